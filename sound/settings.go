package sound

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

const settingsKey = "volumes"

// SettingsStore persists the volume sliders between runs.
type SettingsStore struct {
	m *gdata.Manager
}

// OpenSettings opens (or creates) the gdata store for app.
func OpenSettings(app string) (*SettingsStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: app,
	})
	if err != nil {
		return nil, fmt.Errorf("opening settings store: %w", err)
	}
	return &SettingsStore{m: m}, nil
}

// Load returns the saved volumes; ok is false when nothing was saved yet.
func (s *SettingsStore) Load() (v Volumes, ok bool, err error) {
	data, err := s.m.LoadItem(settingsKey)
	if err != nil {
		return Volumes{}, false, fmt.Errorf("loading volumes: %w", err)
	}
	if len(data) == 0 {
		return Volumes{}, false, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return Volumes{}, false, fmt.Errorf("parsing volumes: %w", err)
	}
	return v.Clamped(), true, nil
}

// Save writes the volumes.
func (s *SettingsStore) Save(v Volumes) error {
	data, err := json.Marshal(v.Clamped())
	if err != nil {
		return fmt.Errorf("encoding volumes: %w", err)
	}
	if err := s.m.SaveItem(settingsKey, data); err != nil {
		return fmt.Errorf("saving volumes: %w", err)
	}
	return nil
}
