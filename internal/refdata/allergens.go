package refdata

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const allergenDelimiter = ";"

// allergenValue accepts either a JSON list of strings or a single
// delimiter-joined string, the two shapes the allergen table has shipped in.
// Whichever shape arrives, it is normalized to a list of trimmed, non-empty
// strings at load time so lookups never inspect types.
type allergenValue []string

func (v *allergenValue) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = normalizeAllergens(list)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*v = normalizeAllergens(strings.Split(joined, allergenDelimiter))
		return nil
	}

	return fmt.Errorf("allergen value must be a string list or a %q-joined string, got %s",
		allergenDelimiter, data)
}

func normalizeAllergens(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// AllergenStore is the read-only allergen table, loaded once at startup.
type AllergenStore struct {
	byName map[string][]string
}

// LoadAllergens reads the allergen table from a JSON file mapping English
// machine names to allergen name lists.
func LoadAllergens(path string) (*AllergenStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read allergen table: %w", err)
	}

	var raw map[string]allergenValue
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse allergen table: %w", err)
	}

	byName := make(map[string][]string, len(raw))
	for k, v := range raw {
		byName[k] = v
	}
	return NewAllergenStore(byName), nil
}

// NewAllergenStore builds a store from already-normalized lists. The map and
// its slices are copied.
func NewAllergenStore(byName map[string][]string) *AllergenStore {
	s := &AllergenStore{byName: make(map[string][]string, len(byName))}
	for k, v := range byName {
		s.byName[k] = append([]string(nil), v...)
	}
	return s
}

// Lookup returns the allergen names for the given machine name. An absent or
// empty entry yields an empty list, never an error. The returned slice is a
// copy; mutating it does not affect the store.
func (s *AllergenStore) Lookup(enName string) []string {
	stored := s.byName[enName]
	out := make([]string, len(stored))
	copy(out, stored)
	return out
}
