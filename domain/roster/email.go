package roster

import (
	"fmt"
	"strings"
)

// EmailDomain derives the district's email domain from its name and state,
// e.g. "Maple Valley USD" in TX becomes "maplevalleyusd.k12.tx.us".
func EmailDomain(districtName, state string) string {
	return fmt.Sprintf("%s.k12.%s.us", slug(districtName), strings.ToLower(state))
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "district"
	}
	return b.String()
}

// EmailAllocator composes first.last addresses under one domain and keeps
// them unique by appending a numeric suffix on collision. Uniqueness is
// per allocator, so the pipeline uses one allocator per district.
type EmailAllocator struct {
	domain string
	seen   map[string]bool
}

// NewEmailAllocator creates an allocator for the given domain.
func NewEmailAllocator(domain string) *EmailAllocator {
	return &EmailAllocator{domain: domain, seen: make(map[string]bool)}
}

// Next returns a unique address for the given name.
func (a *EmailAllocator) Next(firstName, lastName string) string {
	local := slug(firstName) + "." + slug(lastName)
	addr := local + "@" + a.domain
	for n := 2; a.seen[addr]; n++ {
		addr = fmt.Sprintf("%s%d@%s", local, n, a.domain)
	}
	a.seen[addr] = true
	return addr
}

// Reserve marks an externally assigned address as taken.
func (a *EmailAllocator) Reserve(addr string) {
	a.seen[addr] = true
}
