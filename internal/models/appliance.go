package models

const (
	StatusOn  = "on"
	StatusOff = "off"
)

// Appliance is a monitored load source.
type Appliance struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Icon       string  `json:"icon" yaml:"icon"`
	UsageKWh   float64 `json:"usageKwH" yaml:"usage_kwh"` // per day
	Status     string  `json:"status" yaml:"status"`      // on | off
	DailyHours int     `json:"dailyHours" yaml:"daily_hours"`
	Efficiency string  `json:"efficiency" yaml:"efficiency"` // A | B | C | D
}

// WeeklyComparison is one bar group of the appliance comparison chart.
type WeeklyComparison struct {
	Name    string  `json:"name"`
	Current float64 `json:"current"`
	Last    float64 `json:"last"`
	Bench   float64 `json:"bench"`
}
