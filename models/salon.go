package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// SalonInfo is the static business data loaded at startup: identity, hours,
// the service price list and the FAQ seed set.
type SalonInfo struct {
	Name         string             `json:"name"`
	Address      string             `json:"address"`
	Contact      string             `json:"contact"`
	WorkingHours string             `json:"working_hours"`
	ClosedDay    string             `json:"closed_day"`
	Services     map[string]float64 `json:"services"`
	FAQs         []FAQEntry         `json:"faqs"`
}

// LoadSalonInfo reads and parses the salon info file.
func LoadSalonInfo(path string) (*SalonInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read salon info file: %w", err)
	}
	var info SalonInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse salon info file: %w", err)
	}
	if len(info.Services) == 0 {
		return nil, fmt.Errorf("salon info file has no services")
	}
	return &info, nil
}
