// Package catalog holds the preset catalog: the built-in transaction
// presets plus any custom presets loaded from a YAML file.
package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/klingberg/bokfor/internal/ledger"
)

// Catalog resolves presets by id. Built-ins are always present; custom
// presets may shadow them.
type Catalog struct {
	presets []ledger.Preset
	byID    map[string]int
}

// New builds a catalog from the built-in presets plus any extras.
// Every preset is validated; an invalid preset fails catalog
// construction rather than a later posting.
func New(extra ...ledger.Preset) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int)}
	for _, p := range append(append([]ledger.Preset{}, Builtin...), extra...) {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if i, ok := c.byID[p.ID]; ok {
			c.presets[i] = p
			continue
		}
		c.presets = append(c.presets, p)
		c.byID[p.ID] = len(c.presets) - 1
	}
	return c, nil
}

// yamlPreset mirrors ledger.Preset for YAML decoding. The VAT rate comes
// in as a string since yaml.v3 has no decimal support.
type yamlPreset struct {
	ID       string              `yaml:"id"`
	Name     string              `yaml:"name"`
	Category string              `yaml:"category"`
	Type     ledger.PresetType   `yaml:"type"`
	VATRate  string              `yaml:"vat_rate"`
	Special  ledger.SpecialType  `yaml:"special"`
	Rows     []ledger.AccountRow `yaml:"rows"`
}

// LoadFile reads custom presets from a YAML file and returns a catalog
// of built-ins plus the file's presets.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets file: %w", err)
	}
	var doc struct {
		Presets []yamlPreset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse presets file %s: %w", path, err)
	}

	extra := make([]ledger.Preset, 0, len(doc.Presets))
	for _, yp := range doc.Presets {
		rate := decimal.Zero
		if yp.VATRate != "" {
			rate, err = decimal.NewFromString(yp.VATRate)
			if err != nil {
				return nil, fmt.Errorf("preset %s: vat rate %q: %w", yp.ID, yp.VATRate, err)
			}
		}
		extra = append(extra, ledger.Preset{
			ID:       yp.ID,
			Name:     yp.Name,
			Category: yp.Category,
			Type:     yp.Type,
			VATRate:  rate,
			Special:  yp.Special,
			Rows:     yp.Rows,
		})
	}
	return New(extra...)
}

// Find returns the preset with the given id.
func (c *Catalog) Find(id string) (*ledger.Preset, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ledger.ErrUnknownPreset, id)
	}
	return &c.presets[i], nil
}

// All returns every preset in catalog order.
func (c *Catalog) All() []ledger.Preset {
	return c.presets
}
