package firstaid

import "strings"

// Catalog exposes guide lookup over an immutable guide list.
type Catalog struct {
	items []Guide
}

// NewCatalog returns a Catalog backed by a copy of the supplied guides.
func NewCatalog(items []Guide) *Catalog {
	return &Catalog{items: append([]Guide(nil), items...)}
}

// List returns the full catalog in order.
func (c *Catalog) List() []Guide {
	return append([]Guide(nil), c.items...)
}

// Match returns, in catalog order, every guide with at least one keyword
// occurring as a case-insensitive substring of text. A text may match zero,
// one, or several guides.
func (c *Catalog) Match(text string) []Guide {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lowered := strings.ToLower(text)
	var matched []Guide
	for _, guide := range c.items {
		for _, keyword := range guide.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				matched = append(matched, guide)
				break
			}
		}
	}
	return matched
}
