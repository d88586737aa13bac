// Package seed holds the static demo data the dashboard starts from.
package seed

import (
	_ "embed"
	"fmt"

	"optiwatt/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Data is the full initial dataset. Callers get their own copy from Load/Parse
// and may hand slices to stores without further cloning.
type Data struct {
	Appliances    []models.Appliance     `yaml:"appliances"`
	Blocks        []models.Block         `yaml:"blocks"`
	History       []models.EnergyReading `yaml:"history"`
	Suggestions   []models.Suggestion    `yaml:"suggestions"`
	Notifications []models.Notification  `yaml:"notifications"`
}

// Load parses the embedded seed document.
func Load() (*Data, error) {
	return Parse(defaultSeed)
}

// Parse decodes a seed document and normalizes nil room lists.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	for i := range d.Blocks {
		if d.Blocks[i].Rooms == nil {
			d.Blocks[i].Rooms = []models.Room{}
		}
	}
	return &d, nil
}

// MustLoad is Load for program start-up, where a broken embedded file is a build defect.
func MustLoad() *Data {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}
