// Package countries owns the static reference dataset and the per-session
// candidate pool selection.
package countries

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/davemolk/countryguessr/internal/models"
)

// RegionGlobal selects from the whole dataset instead of a single region
const RegionGlobal = "global"

// Regions lists every legal region setting value
var Regions = []string{RegionGlobal, "africa", "americas", "asia", "europe", "oceania"}

//go:embed data/countries.json
var rawDataset []byte

// Load parses the embedded dataset
func Load() ([]models.Country, error) {
	var dataset []models.Country
	if err := json.Unmarshal(rawDataset, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse embedded country dataset: %w", err)
	}

	for i, c := range dataset {
		if len(c.Names) == 0 {
			return nil, fmt.Errorf("country dataset entry %d has no names", i)
		}
	}

	return dataset, nil
}

// ValidRegion reports whether region is a legal setting value
func ValidRegion(region string) bool {
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}
