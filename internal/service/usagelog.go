package service

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"optiwatt/internal/models"
)

const (
	LogDays = 7

	minLogUsage  = 2.0
	logUsageSpan = 15.0

	TrendUp   = "up"
	TrendDown = "down"

	eventOptimal  = "Optimal efficiency maintained"
	eventPeak     = "Partial peak usage detected"
	eventStandard = "Standard load cycle"
)

// Float64Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Float64Source interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// MockLogGenerator produces a week of synthetic per-day usage for display.
// Entries are never stored; every call draws fresh values.
type MockLogGenerator struct {
	src Float64Source
}

// NewMockLogGenerator uses src when given, the process-wide generator otherwise.
func NewMockLogGenerator(src Float64Source) *MockLogGenerator {
	if src == nil {
		src = globalRand{}
	}
	return &MockLogGenerator{src: src}
}

func (g *MockLogGenerator) Generate(now time.Time) []models.DailyLog {
	out := make([]models.DailyLog, 0, LogDays)
	for i := 0; i < LogDays; i++ {
		d := now.AddDate(0, 0, -i)
		usage := truncateTenth(g.src.Float64()*logUsageSpan + minLogUsage)

		trend := TrendDown
		if g.src.Float64() > 0.5 {
			trend = TrendUp
		}

		out = append(out, models.DailyLog{
			Day:      dayLabel(i, d),
			Date:     d.Format("Jan 2"),
			UsageKWh: usage,
			Usage:    fmt.Sprintf("%.1f kWh", usage),
			Event:    logEvent(i),
			Trend:    trend,
		})
	}
	return out
}

func dayLabel(offset int, d time.Time) string {
	switch offset {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	default:
		return d.Weekday().String()
	}
}

func logEvent(i int) string {
	switch {
	case i%3 == 0:
		return eventOptimal
	case i%2 == 0:
		return eventPeak
	default:
		return eventStandard
	}
}

// truncateTenth keeps the value inside [2.0, 17.0) after one-decimal formatting.
func truncateTenth(v float64) float64 {
	t := math.Floor(v*10) / 10
	if ceil := minLogUsage + logUsageSpan - 0.1; t > ceil {
		t = ceil
	}
	if t < minLogUsage {
		t = minLogUsage
	}
	return t
}

// RoomLogService serves mock logs for rooms that exist in the hierarchy.
type RoomLogService struct {
	rooms *HierarchyStore
	gen   *MockLogGenerator
	now   func() time.Time
}

func NewRoomLogService(rooms *HierarchyStore, gen *MockLogGenerator) *RoomLogService {
	return &RoomLogService{rooms: rooms, gen: gen, now: time.Now}
}

func (s *RoomLogService) RoomLogs(blockID, roomID string) ([]models.DailyLog, bool) {
	if _, ok := s.rooms.Room(blockID, roomID); !ok {
		return nil, false
	}
	return s.gen.Generate(s.now()), true
}
