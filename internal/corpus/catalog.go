package corpus

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// CatalogBook is one entry of the static guessing-game catalog. The metadata
// feeds the daily hints; Emoticons is the per-book reveal sequence.
type CatalogBook struct {
	ID                int      `yaml:"id"`
	Title             string   `yaml:"title"`
	Author            string   `yaml:"author"`
	AuthorNationality string   `yaml:"author_nationality"`
	PublicationYear   int      `yaml:"publication_year"`
	Genre             string   `yaml:"genre"`
	Era               string   `yaml:"era"`
	Protagonist       string   `yaml:"protagonist"`
	Setting           string   `yaml:"setting"`
	Emoticons         []string `yaml:"emoticons"`
	NotableQuotes     []string `yaml:"notable_quotes"`
}

// Reference is the book's corpus reference (its Gutenberg id as a string).
func (b CatalogBook) Reference() string {
	return fmt.Sprintf("%d", b.ID)
}

// Catalog is the ordered, immutable book list backing the daily puzzle.
type Catalog struct {
	Books []CatalogBook `yaml:"books"`
}

// LoadCatalog reads the catalog from path, or the embedded default when path
// is empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog

	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if len(catalog.Books) == 0 {
		return nil, fmt.Errorf("catalog has no books")
	}

	return &catalog, nil
}

// ByReference finds a catalog book by its corpus reference.
func (c *Catalog) ByReference(ref string) (CatalogBook, bool) {
	for _, b := range c.Books {
		if b.Reference() == ref {
			return b, true
		}
	}
	return CatalogBook{}, false
}
