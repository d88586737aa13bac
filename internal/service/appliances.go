package service

import (
	"sync"

	"optiwatt/internal/models"
)

// ApplianceRegistry holds the seeded appliances. Only Status ever changes.
type ApplianceRegistry struct {
	mu    sync.RWMutex
	items []models.Appliance
}

func NewApplianceRegistry(seed []models.Appliance) *ApplianceRegistry {
	items := make([]models.Appliance, len(seed))
	copy(items, seed)
	return &ApplianceRegistry{items: items}
}

func (r *ApplianceRegistry) List() []models.Appliance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Appliance, len(r.items))
	copy(out, r.items)
	return out
}

func (r *ApplianceRegistry) Get(id string) (models.Appliance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.items {
		if a.ID == id {
			return a, true
		}
	}
	return models.Appliance{}, false
}

// Toggle flips on <-> off and returns the updated appliance.
func (r *ApplianceRegistry) Toggle(id string) (models.Appliance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		if r.items[i].Status == models.StatusOn {
			r.items[i].Status = models.StatusOff
		} else {
			r.items[i].Status = models.StatusOn
		}
		return r.items[i], true
	}
	return models.Appliance{}, false
}

// ActiveUsage sums the daily usage of appliances that are switched on.
func (r *ApplianceRegistry) ActiveUsage() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum float64
	for _, a := range r.items {
		if a.Status == models.StatusOn {
			sum += a.UsageKWh
		}
	}
	return sum
}
