package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog holds the ordered list of machine-readable class names the model
// output vector is aligned to, plus the Korean display names keyed by the
// machine name. Both are loaded once at startup and never mutated.
type Catalog struct {
	enNames []string
	koNames map[string]string
}

// Load reads the English class list and the Korean display-name map from the
// given JSON files.
func Load(enPath, koPath string) (*Catalog, error) {
	enData, err := os.ReadFile(enPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read class names: %w", err)
	}

	var enNames []string
	if err := json.Unmarshal(enData, &enNames); err != nil {
		return nil, fmt.Errorf("failed to parse class names: %w", err)
	}
	if len(enNames) == 0 {
		return nil, fmt.Errorf("class name list %s is empty", enPath)
	}

	koData, err := os.ReadFile(koPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read display names: %w", err)
	}

	var koNames map[string]string
	if err := json.Unmarshal(koData, &koNames); err != nil {
		return nil, fmt.Errorf("failed to parse display names: %w", err)
	}

	return New(enNames, koNames), nil
}

// New builds a Catalog from already-parsed data. The inputs are copied.
func New(enNames []string, koNames map[string]string) *Catalog {
	c := &Catalog{
		enNames: make([]string, len(enNames)),
		koNames: make(map[string]string, len(koNames)),
	}
	copy(c.enNames, enNames)
	for k, v := range koNames {
		c.koNames[k] = v
	}
	return c
}

// Len returns the number of classes.
func (c *Catalog) Len() int {
	return len(c.enNames)
}

// EnName returns the machine name at position i in model output order.
func (c *Catalog) EnName(i int) string {
	return c.enNames[i]
}

// DisplayName returns the Korean name for a machine name, falling back to
// the machine name itself when no localized entry exists.
func (c *Catalog) DisplayName(enName string) string {
	if ko, ok := c.koNames[enName]; ok {
		return ko
	}
	return enName
}
