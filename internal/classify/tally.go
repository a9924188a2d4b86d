package classify

// Tally groups database ids by domain for one batch run. It is built by the
// caller; the taxonomy itself is never modified.
type Tally struct {
	order []string
	dbs   map[string][]string
}

// NewTally creates an empty tally that reports domains in taxonomy order, General last
func NewTally(t *Taxonomy) *Tally {
	order := append(t.Names(), General)
	return &Tally{order: order, dbs: make(map[string][]string)}
}

// Add records dbID under domain
func (t *Tally) Add(domain, dbID string) {
	if _, known := t.dbs[domain]; !known && !t.inOrder(domain) {
		t.order = append(t.order, domain)
	}
	t.dbs[domain] = append(t.dbs[domain], dbID)
}

// Domains returns the domains that received at least one database
func (t *Tally) Domains() []string {
	var out []string
	for _, d := range t.order {
		if len(t.dbs[d]) > 0 {
			out = append(out, d)
		}
	}
	return out
}

// Databases returns the ids recorded for domain in insertion order
func (t *Tally) Databases(domain string) []string {
	return append([]string(nil), t.dbs[domain]...)
}

// Count returns the number of databases recorded for domain
func (t *Tally) Count(domain string) int {
	return len(t.dbs[domain])
}

func (t *Tally) inOrder(domain string) bool {
	for _, d := range t.order {
		if d == domain {
			return true
		}
	}
	return false
}
