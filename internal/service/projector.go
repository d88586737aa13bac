package service

import (
	"strconv"

	"optiwatt/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultRatePerKWh is the flat electricity tariff.
const DefaultRatePerKWh = 0.15

// Project scales base to the share of load carried by the selected appliances.
// Unknown ids are ignored and duplicates count once. An empty selection yields
// an all-zero series of the same length as base.
func Project(base []models.EnergyReading, appliances []models.Appliance, selected []string, rate float64) models.Projection {
	want := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		want[id] = struct{}{}
	}

	total := decimal.Zero
	picked := decimal.Zero
	p := models.Projection{
		Selected:  []string{},
		Series:    make([]models.EnergyReading, 0, len(base)),
		Breakdown: []models.LoadShare{},
	}
	for _, a := range appliances {
		u := decimal.NewFromFloat(a.UsageKWh)
		total = total.Add(u)
		if _, ok := want[a.ID]; !ok {
			continue
		}
		delete(want, a.ID)
		picked = picked.Add(u)
		p.Selected = append(p.Selected, a.ID)
		p.Breakdown = append(p.Breakdown, models.LoadShare{Name: a.Name, Value: a.UsageKWh})
	}

	ratio := decimal.Zero
	if !total.IsZero() {
		ratio = picked.Div(total)
	}
	p.Ratio = ratio.Round(4).InexactFloat64()

	r := decimal.NewFromFloat(rate)
	sum := decimal.Zero
	for _, pt := range base {
		usage := decimal.NewFromFloat(pt.Usage).Mul(ratio).Round(1)
		sum = sum.Add(usage)
		p.Series = append(p.Series, models.EnergyReading{
			Time:  pt.Time,
			Usage: usage.InexactFloat64(),
			Cost:  usage.Mul(r).Round(2).InexactFloat64(),
		})
	}

	totalUsage := sum.Round(2)
	p.TotalUsage = totalUsage.InexactFloat64()
	p.TotalCost = totalUsage.Mul(r).Round(2).InexactFloat64()
	return p
}

// weekFactors are current / last / benchmark multipliers for weeks 1..4.
var weekFactors = [4][3]float64{
	{0.9, 1.1, 0.8},
	{1.05, 1.2, 0.75},
	{0.85, 1.15, 0.82},
	{0.4, 1.3, 0.7},
}

// CompareWeekly builds the four-week comparison chart for one appliance.
func CompareWeekly(a models.Appliance) []models.WeeklyComparison {
	usage := decimal.NewFromFloat(a.UsageKWh)
	scale := func(f float64) float64 {
		return usage.Mul(decimal.NewFromFloat(f)).Round(1).InexactFloat64()
	}

	out := make([]models.WeeklyComparison, 0, len(weekFactors))
	for i, f := range weekFactors {
		out = append(out, models.WeeklyComparison{
			Name:    "Week " + strconv.Itoa(i+1),
			Current: scale(f[0]),
			Last:    scale(f[1]),
			Bench:   scale(f[2]),
		})
	}
	return out
}

// DashboardService serves the projection over the live appliance registry.
type DashboardService struct {
	history    []models.EnergyReading
	appliances *ApplianceRegistry
	rate       float64
}

// NewDashboardService falls back to DefaultRatePerKWh when rate is not positive.
func NewDashboardService(history []models.EnergyReading, appliances *ApplianceRegistry, rate float64) *DashboardService {
	if rate <= 0 {
		rate = DefaultRatePerKWh
	}
	h := make([]models.EnergyReading, len(history))
	copy(h, history)
	return &DashboardService{history: h, appliances: appliances, rate: rate}
}

func (d *DashboardService) History() []models.EnergyReading {
	out := make([]models.EnergyReading, len(d.history))
	copy(out, d.history)
	return out
}

// Overview projects with every appliance selected.
func (d *DashboardService) Overview() models.Projection {
	all := d.appliances.List()
	ids := make([]string, 0, len(all))
	for _, a := range all {
		ids = append(ids, a.ID)
	}
	return Project(d.history, all, ids, d.rate)
}

func (d *DashboardService) Project(selected []string) models.Projection {
	return Project(d.history, d.appliances.List(), selected, d.rate)
}
