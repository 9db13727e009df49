package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScenarioSchema is the top-level structure of a scenario file: the plant's
// work centers plus the work orders to schedule on them. The same fields are
// accepted in JSON and YAML.
type ScenarioSchema struct {
	WorkCenters         []WorkCenterImport         `json:"work_centers" yaml:"work_centers"`
	ManufacturingOrders []ManufacturingOrderImport `json:"manufacturing_orders,omitempty" yaml:"manufacturing_orders,omitempty"`
	WorkOrders          []WorkOrderImport          `json:"work_orders" yaml:"work_orders"`
}

type WorkCenterImport struct {
	ID                 string                    `json:"id" yaml:"id"`
	Name               string                    `json:"name" yaml:"name"`
	Shifts             []ShiftImport             `json:"shifts" yaml:"shifts"`
	MaintenanceWindows []MaintenanceWindowImport `json:"maintenance_windows,omitempty" yaml:"maintenance_windows,omitempty"`
}

// ShiftImport uses day_of_week 0 for Sunday through 6 for Saturday.
type ShiftImport struct {
	DayOfWeek int `json:"day_of_week" yaml:"day_of_week"`
	StartHour int `json:"start_hour" yaml:"start_hour"`
	EndHour   int `json:"end_hour" yaml:"end_hour"`
}

type MaintenanceWindowImport struct {
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type ManufacturingOrderImport struct {
	ID       string  `json:"id,omitempty" yaml:"id,omitempty"`
	Number   string  `json:"number" yaml:"number"`
	ItemID   string  `json:"item_id" yaml:"item_id"`
	Quantity int     `json:"quantity" yaml:"quantity"`
	DueDate  *string `json:"due_date,omitempty" yaml:"due_date,omitempty"`
}

type WorkOrderImport struct {
	ID                   string   `json:"id,omitempty" yaml:"id,omitempty"`
	Number               string   `json:"number" yaml:"number"`
	ManufacturingOrderID string   `json:"manufacturing_order_id,omitempty" yaml:"manufacturing_order_id,omitempty"`
	WorkCenterID         string   `json:"work_center_id" yaml:"work_center_id"`
	StartDate            string   `json:"start_date" yaml:"start_date"`
	EndDate              string   `json:"end_date" yaml:"end_date"`
	DurationMin          int      `json:"duration_min" yaml:"duration_min"`
	IsMaintenance        bool     `json:"is_maintenance,omitempty" yaml:"is_maintenance,omitempty"`
	DependsOn            []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

// Format is a scenario file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported scenario file extension %q (expected .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// LoadScenarioSchema reads and parses a scenario file.
func LoadScenarioSchema(path string) (*ScenarioSchema, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenarioSchema(data, format)
}

func ParseScenarioSchema(data []byte, format Format) (*ScenarioSchema, error) {
	var schema ScenarioSchema
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing scenario JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing scenario YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown scenario format %q", format)
	}
	return &schema, nil
}
