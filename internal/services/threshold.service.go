package services

import (
	"diskwarden/internal/config"
	"diskwarden/internal/models"

	"github.com/sirupsen/logrus"
)

// MinimumFreeBytes computes the free-space floor for a disk: the minimum of
// "percent% of capacity" and the absolute byte budget. The percent term
// protects small disks, the byte term protects large ones; whichever is
// stricter wins.
func MinimumFreeBytes(total uint64, percent uint, bytes uint64) uint64 {
	byPercent := uint64(float64(percent) / 100.0 * float64(total))
	if byPercent < bytes {
		return byPercent
	}
	return bytes
}

// ThresholdWatcher re-reads the two alert thresholds from live configuration
// and logs transitions. It runs at the start of every refresh cycle so a
// changed setting takes effect on the same cycle's evaluation.
type ThresholdWatcher struct {
	cfg *config.Config
	log *logrus.Logger

	lastPercent uint
	lastBytes   uint64
}

func NewThresholdWatcher(cfg *config.Config, log *logrus.Logger) *ThresholdWatcher {
	return &ThresholdWatcher{cfg: cfg, log: log}
}

// Refresh returns the current thresholds, logging old -> new once per change.
func (w *ThresholdWatcher) Refresh() models.Thresholds {
	percent := w.cfg.FreeThresholdPercent()
	bytes := w.cfg.FreeThresholdBytes()

	if percent != w.lastPercent {
		w.log.Infof("updated free space percent alert threshold %d -> %d", w.lastPercent, percent)
		w.lastPercent = percent
	}
	if bytes != w.lastBytes {
		w.log.Infof("updated free space bytes alert threshold %d -> %d", w.lastBytes, bytes)
		w.lastBytes = bytes
	}

	return models.Thresholds{Percent: percent, Bytes: bytes}
}
