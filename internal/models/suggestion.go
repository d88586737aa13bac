package models

// Suggestion impact levels.
const (
	ImpactHigh   = "High"
	ImpactMedium = "Medium"
	ImpactLow    = "Low"
)

// Suggestion categories.
const (
	CategoryHeating   = "Heating"
	CategoryLighting  = "Lighting"
	CategoryAppliance = "Appliance"
	CategoryPeak      = "Peak"
)

type Suggestion struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Impact      string `json:"impact" yaml:"impact"`
	Category    string `json:"category" yaml:"category"`
}
