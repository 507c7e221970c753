// Package worldmap holds the embedded region map the server seeds at boot.
package worldmap

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"nationsim/internal/domain/world"
)

//go:embed map.yaml
var mapYAML []byte

type resourceSpec struct {
	Energy   int `yaml:"energy"`
	Food     int `yaml:"food"`
	Gold     int `yaml:"gold"`
	Minerals int `yaml:"minerals"`
}

type regionSpec struct {
	ID         string       `yaml:"id"`
	Name       string       `yaml:"name"`
	Terrain    string       `yaml:"terrain"`
	Resources  resourceSpec `yaml:"resources"`
	Population int          `yaml:"population"`
	Defense    int          `yaml:"defense"`
	Adjacent   []string     `yaml:"adjacent"`
}

type mapFile struct {
	Regions []regionSpec `yaml:"regions"`
}

// Load parses and validates the embedded map. The map is trusted content
// compiled into the binary, so a validation failure is a build defect.
func Load() ([]world.Region, error) {
	return parse(mapYAML)
}

func parse(data []byte) ([]world.Region, error) {
	var file mapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse world map: %w", err)
	}
	if len(file.Regions) == 0 {
		return nil, fmt.Errorf("world map has no regions")
	}

	byID := make(map[string]regionSpec, len(file.Regions))
	for _, spec := range file.Regions {
		if spec.ID == "" || spec.Name == "" {
			return nil, fmt.Errorf("region %q: id and name are required", spec.ID)
		}
		if _, dup := byID[spec.ID]; dup {
			return nil, fmt.Errorf("region %q: duplicate id", spec.ID)
		}
		byID[spec.ID] = spec
	}

	regions := make([]world.Region, 0, len(file.Regions))
	for _, spec := range file.Regions {
		terrain := world.Terrain(spec.Terrain)
		if !terrain.Valid() {
			return nil, fmt.Errorf("region %q: unknown terrain %q", spec.ID, spec.Terrain)
		}
		if err := checkRange(spec.ID, "population", spec.Population, world.MaxPopulation); err != nil {
			return nil, err
		}
		if err := checkRange(spec.ID, "defense", spec.Defense, world.MaxDefense); err != nil {
			return nil, err
		}
		for _, pair := range []struct {
			name  string
			value int
		}{
			{"energy", spec.Resources.Energy},
			{"food", spec.Resources.Food},
			{"gold", spec.Resources.Gold},
			{"minerals", spec.Resources.Minerals},
		} {
			if err := checkRange(spec.ID, pair.name, pair.value, world.MaxResource); err != nil {
				return nil, err
			}
		}
		if len(spec.Adjacent) == 0 {
			return nil, fmt.Errorf("region %q: isolated, no adjacency", spec.ID)
		}
		for _, neighbor := range spec.Adjacent {
			other, ok := byID[neighbor]
			if !ok {
				return nil, fmt.Errorf("region %q: unknown neighbor %q", spec.ID, neighbor)
			}
			if !contains(other.Adjacent, spec.ID) {
				return nil, fmt.Errorf("region %q: adjacency to %q is not mutual", spec.ID, neighbor)
			}
		}

		regions = append(regions, world.Region{
			ID:   spec.ID,
			Name: spec.Name,
			Resources: world.Resources{
				Energy:   spec.Resources.Energy,
				Food:     spec.Resources.Food,
				Gold:     spec.Resources.Gold,
				Minerals: spec.Resources.Minerals,
			},
			Population:      spec.Population,
			DefenseLevel:    spec.Defense,
			Terrain:         terrain,
			AdjacentRegions: append([]string(nil), spec.Adjacent...),
		})
	}
	return regions, nil
}

func checkRange(regionID, field string, value, max int) error {
	if value < 0 || value > max {
		return fmt.Errorf("region %q: %s %d out of range [0, %d]", regionID, field, value, max)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
