package domain

import "math/rand/v2"

// DefaultNames is the built-in pool of display names handed to new
// participants until they pick their own.
var DefaultNames = []string{
	"Lovelace", "Turing", "Hopper", "Knuth", "Dijkstra",
	"Liskov", "Hamilton", "Ritchie", "Thompson", "Pike",
	"Kernighan", "Torvalds", "Berners-Lee", "Cerf", "Kahn",
	"McCarthy", "Minsky", "Backus", "Wirth", "Hoare",
	"Lamport", "Stroustrup", "Gosling", "van Rossum", "Matsumoto",
	"Wall", "Stallman", "Bartik", "Goldberg", "Kay",
	"Engelbart", "Shannon", "von Neumann", "Babbage", "Boole",
	"Church", "Codd", "Floyd", "Tarjan", "Karp",
	"Cook", "Rivest", "Shamir", "Adleman", "Diffie",
	"Hellman", "Allen", "Sutherland", "Hamming", "Perlman",
}

// NameCatalog picks default participant names uniformly from a fixed list.
type NameCatalog struct {
	names []string
	intn  func(n int) int
}

type CatalogOption func(*NameCatalog)

// WithIntN replaces the random source. fn must return a value in [0, n).
func WithIntN(fn func(n int) int) CatalogOption {
	return func(c *NameCatalog) { c.intn = fn }
}

// NewNameCatalog copies names; an empty list falls back to DefaultNames.
func NewNameCatalog(names []string, opts ...CatalogOption) *NameCatalog {
	if len(names) == 0 {
		names = DefaultNames
	}
	c := &NameCatalog{
		names: append([]string(nil), names...),
		intn:  rand.IntN,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *NameCatalog) Len() int { return len(c.names) }

func (c *NameCatalog) Pick() string {
	return c.names[c.intn(len(c.names))]
}
