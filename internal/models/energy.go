package models

// EnergyReading is one point of the usage series.
type EnergyReading struct {
	Time  string  `json:"time" yaml:"time"`
	Usage float64 `json:"usage" yaml:"usage"` // kWh
	Cost  float64 `json:"cost" yaml:"cost"`
}

// LoadShare is one slice of the load breakdown (pie) view.
type LoadShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Projection is the dashboard view scaled to the selected appliances.
type Projection struct {
	Selected   []string        `json:"selected"`
	Ratio      float64         `json:"ratio"`
	Series     []EnergyReading `json:"series"`
	TotalUsage float64         `json:"totalUsage"`
	TotalCost  float64         `json:"totalCost"`
	Breakdown  []LoadShare     `json:"breakdown"`
}

// DailyLog is a synthetic per-day usage entry for display only.
type DailyLog struct {
	Day      string  `json:"day"`
	Date     string  `json:"date"`
	UsageKWh float64 `json:"usageKwh"`
	Usage    string  `json:"usage"` // "12.3 kWh"
	Event    string  `json:"event"`
	Trend    string  `json:"trend"` // up | down
}
