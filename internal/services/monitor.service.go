package services

import (
	"context"
	"sync"
	"time"

	"diskwarden/internal/config"
	"diskwarden/internal/models"

	"github.com/sirupsen/logrus"
)

// Monitor owns the node's storage-health snapshot. A single background
// writer refreshes it; any number of readers take the cached copy without
// waiting on an in-progress refresh.
type Monitor struct {
	cfg        *config.Config
	log        *logrus.Logger
	prober     Prober
	thresholds *ThresholdWatcher
	evaluator  *Evaluator
	paths      []string // overrides cfg.DataDirs() when non-nil
	version    string
	started    time.Time
	onUpdate   []func(models.LocalState)

	mu    sync.RWMutex
	state models.LocalState
}

// MonitorOption customizes a Monitor at construction time.
type MonitorOption func(*Monitor)

// WithProber substitutes the capacity probe, e.g. a StaticProber in tests.
func WithProber(p Prober) MonitorOption {
	return func(m *Monitor) { m.prober = p }
}

// WithPaths redirects the watched paths away from the configured data dirs.
func WithPaths(paths ...string) MonitorOption {
	return func(m *Monitor) { m.paths = paths }
}

func NewMonitor(cfg *config.Config, log *logrus.Logger, version string, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		cfg:     cfg,
		log:     log,
		prober:  NewProber(),
		version: version,
		started: time.Now(),
	}
	m.thresholds = NewThresholdWatcher(cfg, log)
	m.evaluator = NewEvaluator(log, NewDespammer(cfg.DespamInterval()))
	for _, opt := range opts {
		opt(m)
	}
	m.state = models.LocalState{Version: version, StorageSpaceAlert: models.AlertOK}
	return m
}

// OnUpdate registers fn to run after each completed refresh, with the new
// snapshot. Registration is not safe once the collector is running.
func (m *Monitor) OnUpdate(fn func(models.LocalState)) {
	m.onUpdate = append(m.onUpdate, fn)
}

// UpdateState runs one refresh cycle: thresholds are refreshed first so a
// settings change takes effect on this cycle's evaluation, then every
// configured path is probed, the alert state is evaluated, and the snapshot
// is swapped in whole. If any probe fails the swap is skipped and the
// previous snapshot stays as the last-known-good value.
//
// Cycles are not reentrant; the caller runs them one at a time.
func (m *Monitor) UpdateState(ctx context.Context) error {
	thresholds := m.thresholds.Refresh()

	disks, err := m.getDisks(ctx)
	if err != nil {
		return err
	}

	alert := m.evaluator.Evaluate(disks, thresholds)

	snapshot := models.LocalState{
		Version:           m.version,
		Uptime:            time.Since(m.started),
		Disks:             disks,
		StorageSpaceAlert: alert,
		RefreshedAt:       time.Now(),
	}

	m.mu.Lock()
	m.state = snapshot
	m.mu.Unlock()

	for _, fn := range m.onUpdate {
		fn(snapshot)
	}
	return nil
}

func (m *Monitor) getDisks(ctx context.Context) ([]models.Disk, error) {
	paths := m.paths
	if paths == nil {
		paths = m.cfg.DataDirs()
	}
	disks := make([]models.Disk, 0, len(paths))
	for _, path := range paths {
		d, err := m.prober.Probe(ctx, path)
		if err != nil {
			return nil, err
		}
		disks = append(disks, d)
	}
	return disks, nil
}

// StateCached returns the last completed snapshot. It never blocks on a
// refresh in progress.
func (m *Monitor) StateCached() models.LocalState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// StartCollector refreshes the snapshot on a fixed cadence until ctx is
// cancelled. All cycles run on one goroutine, so a cycle always finishes
// before the next one starts.
func (m *Monitor) StartCollector(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := m.UpdateState(ctx); err != nil {
					m.log.WithError(err).Warn("disk refresh failed, keeping previous snapshot")
				}
			}
		}
	}()
	m.log.Infof("storage monitor started (interval: %v)", interval)
}

var localMonitor *Monitor

// InitMonitor registers the process-wide monitor used by the HTTP handlers.
func InitMonitor(m *Monitor) {
	localMonitor = m
}

// GetMonitor returns the registered monitor, or nil before InitMonitor.
func GetMonitor() *Monitor {
	return localMonitor
}
