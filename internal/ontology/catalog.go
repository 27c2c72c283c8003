package ontology

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonathan/resume-analyzer/internal/types"
)

//go:embed catalog.json
var catalogFiles embed.FS

var (
	defaultOnce sync.Once
	defaultOnt  *Ontology
)

// Default returns the ontology built from the embedded catalog. The catalog
// ships with the binary and is validated in tests, so a build failure here is
// a programming error.
func Default() *Ontology {
	defaultOnce.Do(func() {
		ont, err := loadEmbedded()
		if err != nil {
			panic(fmt.Sprintf("embedded skill catalog is invalid: %v", err))
		}
		defaultOnt = ont
	})
	return defaultOnt
}

func loadEmbedded() (*Ontology, error) {
	data, err := catalogFiles.ReadFile("catalog.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	var entries []types.OntologyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	return New(entries)
}
