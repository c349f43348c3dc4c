package services

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Despammer gates repeated diagnostics for the same persistent condition,
// allowing at most one emission per tag per interval. A disk that stays low
// for hours logs once per interval, not once per refresh cycle.
type Despammer struct {
	interval time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewDespammer(interval time.Duration) *Despammer {
	return &Despammer{
		interval: interval,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether a diagnostic keyed by tag may be emitted now.
func (d *Despammer) Allow(tag string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	lim, exists := d.limiters[tag]
	if !exists {
		lim = rate.NewLimiter(rate.Every(d.interval), 1)
		d.limiters[tag] = lim
	}
	return lim.Allow()
}
