package respschema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rosterforge/rostergen/pkg/respschema"
)

func TestObject_RequiresAllPropertiesSorted(t *testing.T) {
	s := respschema.Object(map[string]*respschema.Schema{
		"zip":  respschema.String("zip code"),
		"name": respschema.String("name"),
		"city": respschema.String("city"),
	})

	want := []string{"city", "name", "zip"}
	if len(s.Required) != len(want) {
		t.Fatalf("required = %v, want %v", s.Required, want)
	}
	for i, r := range want {
		if s.Required[i] != r {
			t.Errorf("required[%d] = %s, want %s", i, s.Required[i], r)
		}
	}
}

func TestObjectWithOptional(t *testing.T) {
	s := respschema.ObjectWithOptional(map[string]*respschema.Schema{
		"teacher_id":   respschema.String("primary teacher"),
		"teacher_2_id": respschema.String("co-teacher"),
	}, []string{"teacher_id"})

	if len(s.Required) != 1 || s.Required[0] != "teacher_id" {
		t.Errorf("required = %v, want [teacher_id]", s.Required)
	}
}

func TestArray_ExactBounds(t *testing.T) {
	s := respschema.Array(respschema.String("item"), 12)
	if s.MinItems != 12 || s.MaxItems != 12 {
		t.Errorf("bounds = [%d, %d], want [12, 12]", s.MinItems, s.MaxItems)
	}
}

func TestSchema_WireFormat(t *testing.T) {
	s := respschema.Object(map[string]*respschema.Schema{
		"grade": respschema.StringEnum("grade level", "K", "1", "2"),
	})

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(data)

	for _, frag := range []string{`"type":"OBJECT"`, `"enum":["K","1","2"]`, `"required":["grade"]`} {
		if !strings.Contains(got, frag) {
			t.Errorf("marshaled schema missing %s:\n%s", frag, got)
		}
	}
	if strings.Contains(got, "minItems") {
		t.Error("zero bounds should be omitted from the wire format")
	}
}
