// Package ontology provides the controlled vocabulary of canonical skills.
// An ontology is built once, validated at construction, and then read-only,
// so concurrent analysis runs can share a snapshot without locking.
package ontology

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DuplicateAliasError reports an alias string mapping to two canonical ids.
// Catalogs with ambiguous aliases are rejected outright rather than letting
// extraction pick a winner at runtime.
type DuplicateAliasError struct {
	Alias    string
	FirstID  string
	SecondID string
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("alias %q maps to both %q and %q", e.Alias, e.FirstID, e.SecondID)
}

// Alias is one lookup key pointing at a canonical entry, used by the skill
// extractor for greedy longest-alias-first matching.
type Alias struct {
	Text    string // normalized alias text
	SkillID string
}

// Ontology is an immutable snapshot of the skill vocabulary.
type Ontology struct {
	entries map[string]types.OntologyEntry
	lookup  map[string]string // normalized alias -> canonical id
	aliases []Alias           // sorted longest first for greedy matching
}

// New builds an ontology from catalog entries. It fails if two entries share
// an alias (canonical names count as aliases of their own entry).
func New(entries []types.OntologyEntry) (*Ontology, error) {
	o := &Ontology{
		entries: make(map[string]types.OntologyEntry, len(entries)),
		lookup:  make(map[string]string),
	}

	for _, entry := range entries {
		if entry.ID == "" || entry.CanonicalName == "" {
			return nil, fmt.Errorf("ontology entry missing id or canonical name: %+v", entry)
		}
		if _, exists := o.entries[entry.ID]; exists {
			return nil, fmt.Errorf("duplicate ontology id %q", entry.ID)
		}
		o.entries[entry.ID] = entry

		keys := append([]string{entry.CanonicalName}, entry.Aliases...)
		for _, key := range keys {
			normalized := NormalizeToken(key)
			if normalized == "" {
				continue
			}
			if existing, taken := o.lookup[normalized]; taken {
				if existing == entry.ID {
					continue
				}
				return nil, &DuplicateAliasError{Alias: normalized, FirstID: existing, SecondID: entry.ID}
			}
			o.lookup[normalized] = entry.ID
			o.aliases = append(o.aliases, Alias{Text: normalized, SkillID: entry.ID})
		}
	}

	// Longest first so multi-word entries are matched before their parts;
	// alphabetical within a length for deterministic extraction order.
	sort.Slice(o.aliases, func(i, j int) bool {
		if len(o.aliases[i].Text) != len(o.aliases[j].Text) {
			return len(o.aliases[i].Text) > len(o.aliases[j].Text)
		}
		return o.aliases[i].Text < o.aliases[j].Text
	})

	return o, nil
}

// LoadFile builds an ontology from a JSON catalog file.
func LoadFile(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var entries []types.OntologyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(entries)
}

// versionSuffix matches trailing version markers like "3", "2.7" or "v5".
var versionSuffix = regexp.MustCompile(`\s*v?\d+(\.\d+)*$`)

// Resolve looks a token up against the vocabulary. A miss is the expected
// outcome for any non-cataloged term; no fuzzy guessing happens beyond the
// declared aliases and a version-suffix retry ("Python3" -> "python").
func (o *Ontology) Resolve(token string) (types.OntologyEntry, bool) {
	normalized := NormalizeToken(token)
	if normalized == "" {
		return types.OntologyEntry{}, false
	}
	if id, ok := o.lookup[normalized]; ok {
		return o.entries[id], true
	}
	stripped := versionSuffix.ReplaceAllString(normalized, "")
	if stripped != "" && stripped != normalized {
		if id, ok := o.lookup[stripped]; ok {
			return o.entries[id], true
		}
	}
	return types.OntologyEntry{}, false
}

// Entry returns the entry for a canonical id.
func (o *Ontology) Entry(id string) (types.OntologyEntry, bool) {
	entry, ok := o.entries[id]
	return entry, ok
}

// Entries returns all entries sorted by id.
func (o *Ontology) Entries() []types.OntologyEntry {
	out := make([]types.OntologyEntry, 0, len(o.entries))
	for _, entry := range o.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Aliases returns the alias table sorted longest first.
func (o *Ontology) Aliases() []Alias {
	return o.aliases
}

// Len returns the number of canonical entries.
func (o *Ontology) Len() int {
	return len(o.entries)
}

// NormalizeToken lowercases a token and strips surrounding punctuation and
// collapsed whitespace so "Python," and "python" share a lookup key.
func NormalizeToken(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	token = strings.Trim(token, ".,;:()[]{}\"'`")
	return strings.Join(strings.Fields(token), " ")
}
