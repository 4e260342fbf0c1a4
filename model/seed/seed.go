// Package seed loads the activities the registry starts with.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mergington.GO/model/entity"
)

//go:embed activities.yaml
var defaultSeed []byte

// Default returns the built-in Mergington activities.
func Default() ([]entity.Activity, error) {
	return Parse(defaultSeed)
}

// Load reads activities from path, or the built-in seed when path is empty.
func Load(path string) ([]entity.Activity, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	acts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return acts, nil
}

// Parse decodes and validates a YAML list of activities.
func Parse(data []byte) ([]entity.Activity, error) {
	var acts []entity.Activity
	if err := yaml.Unmarshal(data, &acts); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if err := Validate(acts); err != nil {
		return nil, err
	}
	return acts, nil
}

// Validate checks names are present and unique, capacities are positive and no
// participant is listed twice in one activity.
func Validate(acts []entity.Activity) error {
	if len(acts) == 0 {
		return fmt.Errorf("seed has no activities")
	}
	names := make(map[string]struct{}, len(acts))
	for i, a := range acts {
		if a.Name == "" {
			return fmt.Errorf("activity #%d: name is required", i+1)
		}
		if _, dup := names[a.Name]; dup {
			return fmt.Errorf("activity %q: duplicate name", a.Name)
		}
		names[a.Name] = struct{}{}
		if a.MaxParticipants <= 0 {
			return fmt.Errorf("activity %q: max_participants must be positive, got %d", a.Name, a.MaxParticipants)
		}
		seen := make(map[string]struct{}, len(a.Participants))
		for _, p := range a.Participants {
			if _, dup := seen[p]; dup {
				return fmt.Errorf("activity %q: participant %s listed twice", a.Name, p)
			}
			seen[p] = struct{}{}
		}
	}
	return nil
}
