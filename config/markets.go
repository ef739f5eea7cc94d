package config

import (
	"regexp"
	"strings"

	"marketpulse/server/internal/models"
)

// RegionReader is the subset of the database used for market configuration.
type RegionReader interface {
	GetRegions() ([]models.Region, error)
}

// GetCityNames returns the deduplicated list of cities across all configured
// regions, in first-seen order. The scheduler warms forecasts for these.
func GetCityNames(db RegionReader) ([]string, error) {
	regions, err := db.GetRegions()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	cities := []string{}
	for _, region := range regions {
		for _, city := range region.Cities {
			key := NormalizeCity(city)
			if seen[key] {
				continue
			}
			seen[key] = true
			cities = append(cities, city)
		}
	}
	return cities, nil
}

var nonCityChars = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeCity lowercases a city name and collapses whitespace and
// punctuation to single hyphens, producing a stable lookup key.
func NormalizeCity(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = nonCityChars.ReplaceAllString(key, "-")
	return strings.Trim(key, "-")
}
