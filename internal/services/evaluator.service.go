package services

import (
	"fmt"

	"diskwarden/internal/models"

	units "github.com/docker/go-units"
	"github.com/sirupsen/logrus"
)

// StableAlertTag prefixes every low-space diagnostic so downstream alert
// dedup (and anyone grepping the logs) has a fixed string to key on.
const StableAlertTag = "storage space alert"

// Evaluator turns a set of disk samples into the node-wide storage space
// alert and emits despammed diagnostics for disks below their floor.
type Evaluator struct {
	log    *logrus.Logger
	despam *Despammer
}

func NewEvaluator(log *logrus.Logger, despam *Despammer) *Evaluator {
	return &Evaluator{log: log, despam: despam}
}

// Evaluate returns AlertLowSpace if any disk sits at or below its free-space
// floor. Every disk is inspected so each low disk gets its own diagnostic,
// not just the first one found.
func (e *Evaluator) Evaluate(disks []models.Disk, t models.Thresholds) models.AlertState {
	alert := models.AlertOK
	for _, d := range disks {
		if d.Total == 0 {
			// A zero-capacity reading means the probe is broken, not that
			// the disk is fine. Refusing to continue beats reporting ok.
			panic(fmt.Sprintf("total disk space cannot be zero: %s", d.Path))
		}

		minFree := MinimumFreeBytes(d.Total, t.Percent, t.Bytes)
		low := d.Free <= minFree
		e.log.Debugf("disk %s: min free %d, free %d -> alert %t", d.Path, minFree, d.Free, low)

		if low {
			alert = models.AlertLowSpace
			e.logSpaceError(d, minFree)
		}
	}
	return alert
}

func (e *Evaluator) logSpaceError(d models.Disk, minFree uint64) {
	if !e.despam.Allow(StableAlertTag + ":" + d.Path) {
		return
	}
	e.log.WithField("path", d.Path).Errorf(
		"%s: free space at %.3f%% on %s: %s total, %s free, min. free %s. "+
			"Please adjust retention policies as needed to avoid running out of space.",
		StableAlertTag,
		d.PercentFree(),
		d.Path,
		units.BytesSize(float64(d.Total)),
		units.BytesSize(float64(d.Free)),
		units.BytesSize(float64(minFree)),
	)
}
