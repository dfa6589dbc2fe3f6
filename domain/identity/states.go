package identity

// stateAbbrevs lists the US states districts are mapped onto, in
// round-robin assignment order.
var stateAbbrevs = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

var stateSet = func() map[string]bool {
	m := make(map[string]bool, len(stateAbbrevs))
	for _, s := range stateAbbrevs {
		m[s] = true
	}
	return m
}()

// ValidState reports whether s is a known two-letter state abbreviation.
func ValidState(s string) bool { return stateSet[s] }

// stateForIndex assigns states to districts round-robin.
func stateForIndex(i int) string {
	return stateAbbrevs[i%len(stateAbbrevs)]
}
