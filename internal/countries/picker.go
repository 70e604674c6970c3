package countries

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/davemolk/countryguessr/internal/models"
)

// ErrPoolExhausted is returned when a region has fewer countries than rounds requested
var ErrPoolExhausted = errors.New("not enough countries in the selected region")

// Picker draws shuffled candidate pools from the dataset. Draw is called from
// interaction handler goroutines, so the generator sits behind a mutex.
type Picker struct {
	mu      sync.Mutex
	random  *rand.Rand
	dataset []models.Country
}

// Config for the picker
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new picker over the given dataset
func New(cfg *Config, dataset []models.Country) *Picker {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Picker{
		random:  rand.New(rand.NewSource(seed)),
		dataset: dataset,
	}
}

// Draw returns n distinct countries from the region, in shuffled order.
// RegionGlobal draws from the whole dataset.
func (p *Picker) Draw(region string, n int) ([]models.Country, error) {
	var pool []models.Country
	for _, c := range p.dataset {
		if region == RegionGlobal || c.Region == region {
			pool = append(pool, c)
		}
	}

	if len(pool) < n {
		return nil, ErrPoolExhausted
	}

	p.mu.Lock()
	p.random.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	p.mu.Unlock()

	return pool[:n], nil
}

// PoolSize returns how many countries the region can supply
func (p *Picker) PoolSize(region string) int {
	count := 0
	for _, c := range p.dataset {
		if region == RegionGlobal || c.Region == region {
			count++
		}
	}
	return count
}
