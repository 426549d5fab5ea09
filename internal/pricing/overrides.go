package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overrideFile is the YAML layout of a price override file:
//
//	prices:
//	  cement_50kg: 38.90
//	  sand: 95
type overrideFile struct {
	Prices map[string]float64 `yaml:"prices"`
}

// LoadOverrides reads unit price overrides from a YAML file.
func LoadOverrides(path string) (map[Material]float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price overrides: %w", err)
	}
	return ParseOverrides(b)
}

// ParseOverrides decodes the YAML override layout.
func ParseOverrides(data []byte) (map[Material]float64, error) {
	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml price overrides parsing error: %w", err)
	}
	out := make(map[Material]float64, len(f.Prices))
	for k, v := range f.Prices {
		out[Material(k)] = v
	}
	return out, nil
}

// LoadCatalog returns the default catalog with the overrides at path applied.
// An empty path yields the default catalog.
func LoadCatalog(path string) (Catalog, error) {
	catalog := DefaultCatalog()
	if path == "" {
		return catalog, nil
	}
	prices, err := LoadOverrides(path)
	if err != nil {
		return Catalog{}, err
	}
	return catalog.WithPrices(prices)
}
