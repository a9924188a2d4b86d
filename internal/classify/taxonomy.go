// Package classify assigns databases to business domains by keyword matching
// over the database id, table names and column names.
package classify

import (
	"fmt"
	"strings"
)

// General is the domain assigned when no domain scores above zero
const General = "general"

// GeneralDescription describes the fallback domain
const GeneralDescription = "Databases without a recognizable domain signal"

// Domain is one entry of a taxonomy
type Domain struct {
	Name          string
	Description   string
	Keywords      []string
	TablePatterns []string // stronger signals, matched against table names only
}

// Taxonomy is an ordered, read-only list of domains. Order decides ties.
type Taxonomy struct {
	domains []Domain
}

// NewTaxonomy copies and validates the given domains. Keywords and patterns are lower-cased.
func NewTaxonomy(domains []Domain) (*Taxonomy, error) {
	seen := make(map[string]bool, len(domains))
	copied := make([]Domain, 0, len(domains))

	for _, d := range domains {
		if d.Name == "" {
			return nil, fmt.Errorf("domain name is required")
		}
		if d.Name == General {
			return nil, fmt.Errorf("domain name %q is reserved", General)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("duplicate domain %q", d.Name)
		}
		seen[d.Name] = true

		if err := requireNonEmpty(d.Name, "keyword", d.Keywords); err != nil {
			return nil, err
		}
		if err := requireNonEmpty(d.Name, "table pattern", d.TablePatterns); err != nil {
			return nil, err
		}

		copied = append(copied, Domain{
			Name:          d.Name,
			Description:   d.Description,
			Keywords:      lowerAll(d.Keywords),
			TablePatterns: lowerAll(d.TablePatterns),
		})
	}

	return &Taxonomy{domains: copied}, nil
}

// requireNonEmpty rejects blank entries; an empty substring matches every name.
func requireNonEmpty(domain, what string, values []string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("domain %q has an empty %s", domain, what)
		}
	}
	return nil
}

// Domains returns a copy of the domains in taxonomy order
func (t *Taxonomy) Domains() []Domain {
	out := make([]Domain, len(t.domains))
	for i, d := range t.domains {
		out[i] = Domain{
			Name:          d.Name,
			Description:   d.Description,
			Keywords:      append([]string(nil), d.Keywords...),
			TablePatterns: append([]string(nil), d.TablePatterns...),
		}
	}
	return out
}

// Names returns domain names in taxonomy order, without General
func (t *Taxonomy) Names() []string {
	names := make([]string, len(t.domains))
	for i, d := range t.domains {
		names[i] = d.Name
	}
	return names
}

// Description returns the description of a domain, including General
func (t *Taxonomy) Description(name string) string {
	if name == General {
		return GeneralDescription
	}
	for _, d := range t.domains {
		if d.Name == name {
			return d.Description
		}
	}
	return ""
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// DefaultTaxonomy returns the built-in BIRD domain taxonomy
func DefaultTaxonomy() *Taxonomy {
	t, err := NewTaxonomy(defaultDomains)
	if err != nil {
		panic(err)
	}
	return t
}

var defaultDomains = []Domain{
	{
		Name:          "financial",
		Description:   "Banking, trading, investments, financial services",
		Keywords:      []string{"bank", "finance", "financial", "trading", "stock", "money", "credit", "loan", "payment", "investment"},
		TablePatterns: []string{"account", "transaction", "payment", "balance", "credit", "debit"},
	},
	{
		Name:          "healthcare",
		Description:   "Hospitals, medical records, patient management",
		Keywords:      []string{"hospital", "medical", "patient", "health", "doctor", "clinic", "medicine", "treatment"},
		TablePatterns: []string{"patient", "doctor", "diagnosis", "treatment", "medical_record"},
	},
	{
		Name:          "education",
		Description:   "Schools, universities, student management systems",
		Keywords:      []string{"school", "student", "university", "college", "academic", "course", "class", "grade"},
		TablePatterns: []string{"student", "course", "grade", "enrollment", "teacher", "class"},
	},
	{
		Name:          "retail",
		Description:   "Retail stores, e-commerce, sales management",
		Keywords:      []string{"store", "shop", "retail", "customer", "product", "sales", "order", "purchase"},
		TablePatterns: []string{"customer", "order", "product", "inventory", "sale", "purchase"},
	},
	{
		Name:          "sports",
		Description:   "Sports leagues, games, player statistics",
		Keywords:      []string{"game", "sport", "team", "player", "match", "league", "tournament", "athlete"},
		TablePatterns: []string{"player", "team", "game", "score", "match", "season"},
	},
	{
		Name:        "technology",
		Description: "Software systems, technology platforms",
		Keywords:    []string{"software", "tech", "computer", "system", "app", "web", "platform", "network"},
	},
	{
		Name:          "entertainment",
		Description:   "Movies, music, entertainment industry",
		Keywords:      []string{"movie", "film", "music", "artist", "show", "concert", "media", "theater"},
		TablePatterns: []string{"movie", "actor", "artist", "album", "song", "show"},
	},
	{
		Name:          "transportation",
		Description:   "Airlines, transportation, logistics",
		Keywords:      []string{"car", "flight", "train", "transport", "airline", "vehicle", "shipping", "logistics"},
		TablePatterns: []string{"flight", "passenger", "route", "schedule", "vehicle"},
	},
	{
		Name:          "government",
		Description:   "Government agencies, public services",
		Keywords:      []string{"government", "public", "city", "county", "state", "federal", "municipal", "civic"},
		TablePatterns: []string{"citizen", "permit", "license", "department", "official"},
	},
	{
		Name:          "real_estate",
		Description:   "Real estate, property management",
		Keywords:      []string{"property", "house", "building", "real_estate", "apartment", "rent", "lease"},
		TablePatterns: []string{"property", "listing", "agent", "buyer", "seller", "mortgage"},
	},
	{
		Name:        "human_resources",
		Description: "Human resources, employee management",
		Keywords:    []string{"employee", "hr", "payroll", "staff", "personnel", "workforce", "hiring"},
	},
	{
		Name:        "manufacturing",
		Description: "Manufacturing, supply chain management",
		Keywords:    []string{"factory", "production", "manufacturing", "supply", "warehouse", "inventory"},
	},
	{
		Name:        "telecom",
		Description: "Telecommunications, mobile networks",
		Keywords:    []string{"telecom", "phone", "mobile", "network", "communication", "cellular"},
	},
	{
		Name:        "insurance",
		Description: "Insurance companies, policy management",
		Keywords:    []string{"insurance", "policy", "claim", "coverage", "premium", "risk"},
	},
	{
		Name:        "food_service",
		Description: "Restaurants, food service industry",
		Keywords:    []string{"restaurant", "food", "menu", "dining", "cafe", "recipe", "nutrition"},
	},
	{
		Name:        "energy",
		Description: "Energy companies, utilities",
		Keywords:    []string{"energy", "power", "utility", "electric", "gas", "solar", "renewable"},
	},
	{
		Name:        "agriculture",
		Description: "Agriculture, farming operations",
		Keywords:    []string{"farm", "agriculture", "crop", "livestock", "farming", "rural"},
	},
	{
		Name:        "legal",
		Description: "Legal systems, law enforcement",
		Keywords:    []string{"legal", "law", "court", "justice", "attorney", "police", "crime"},
	},
	{
		Name:        "nonprofit",
		Description: "Non-profit organizations, social services",
		Keywords:    []string{"nonprofit", "charity", "social", "volunteer", "donation", "community"},
	},
	{
		Name:        "tourism",
		Description: "Tourism, travel booking, hospitality",
		Keywords:    []string{"travel", "tourism", "hotel", "vacation", "booking", "destination"},
	},
	{
		Name:        "research",
		Description: "Scientific research, laboratories",
		Keywords:    []string{"research", "science", "laboratory", "experiment", "study", "academic"},
	},
}
