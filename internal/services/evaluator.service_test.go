package services

import (
	"testing"
	"time"

	"diskwarden/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func newTestEvaluator() (*Evaluator, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return NewEvaluator(log, NewDespammer(time.Hour)), hook
}

func errorEntries(hook *test.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			n++
		}
	}
	return n
}

func TestEvaluateScenarios(t *testing.T) {
	tests := []struct {
		name       string
		disk       models.Disk
		thresholds models.Thresholds
		want       models.AlertState
	}{
		{
			name:       "half full disk below dual 100GB floor",
			disk:       models.Disk{Path: "/data", Free: 50 * gb, Total: 1000 * gb},
			thresholds: models.Thresholds{Percent: 10, Bytes: 100 * gb},
			want:       models.AlertLowSpace,
		},
		{
			name:       "same disk above relaxed 10GB floor",
			disk:       models.Disk{Path: "/data", Free: 50 * gb, Total: 1000 * gb},
			thresholds: models.Thresholds{Percent: 1, Bytes: 10 * gb},
			want:       models.AlertOK,
		},
		{
			name:       "free exactly at floor still alerts",
			disk:       models.Disk{Path: "/data", Free: 10 * gb, Total: 1000 * gb},
			thresholds: models.Thresholds{Percent: 1, Bytes: 10 * gb},
			want:       models.AlertLowSpace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEvaluator()
			got := e.Evaluate([]models.Disk{tt.disk}, tt.thresholds)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateAnyLowDiskFlipsAggregate(t *testing.T) {
	e, _ := newTestEvaluator()
	disks := []models.Disk{
		{Path: "/data", Free: 500 * gb, Total: 1000 * gb},
		{Path: "/wal", Free: 1 * gb, Total: 1000 * gb},
		{Path: "/scratch", Free: 400 * gb, Total: 1000 * gb},
	}
	got := e.Evaluate(disks, models.Thresholds{Percent: 5, Bytes: 10 * gb})
	assert.Equal(t, models.AlertLowSpace, got)
}

func TestEvaluateAllAboveFloorIsOK(t *testing.T) {
	e, hook := newTestEvaluator()
	disks := []models.Disk{
		{Path: "/data", Free: 500 * gb, Total: 1000 * gb},
		{Path: "/wal", Free: 200 * gb, Total: 1000 * gb},
	}
	got := e.Evaluate(disks, models.Thresholds{Percent: 5, Bytes: 10 * gb})
	assert.Equal(t, models.AlertOK, got)
	assert.Equal(t, 0, errorEntries(hook))
}

func TestEvaluateReportsEveryLowDisk(t *testing.T) {
	e, hook := newTestEvaluator()
	disks := []models.Disk{
		{Path: "/data", Free: 1 * gb, Total: 1000 * gb},
		{Path: "/wal", Free: 2 * gb, Total: 1000 * gb},
	}
	got := e.Evaluate(disks, models.Thresholds{Percent: 5, Bytes: 10 * gb})
	assert.Equal(t, models.AlertLowSpace, got)
	// One diagnostic per low disk, not just the first found.
	assert.Equal(t, 2, errorEntries(hook))
}

func TestEvaluateDespamsPersistentCondition(t *testing.T) {
	e, hook := newTestEvaluator()
	disks := []models.Disk{{Path: "/data", Free: 1 * gb, Total: 1000 * gb}}
	thresholds := models.Thresholds{Percent: 5, Bytes: 10 * gb}

	for i := 0; i < 5; i++ {
		got := e.Evaluate(disks, thresholds)
		assert.Equal(t, models.AlertLowSpace, got)
	}
	// Five cycles within one despam interval, one error line.
	assert.Equal(t, 1, errorEntries(hook))
}

func TestEvaluateDiagnosticContent(t *testing.T) {
	e, hook := newTestEvaluator()
	e.Evaluate(
		[]models.Disk{{Path: "/data", Free: 1 * gb, Total: 1000 * gb}},
		models.Thresholds{Percent: 5, Bytes: 10 * gb},
	)

	entry := hook.LastEntry()
	assert.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Contains(t, entry.Message, StableAlertTag)
	assert.Contains(t, entry.Message, "/data")
	assert.Contains(t, entry.Message, "retention")
	assert.Equal(t, "/data", entry.Data["path"])
}

func TestEvaluateZeroTotalPanics(t *testing.T) {
	e, _ := newTestEvaluator()
	assert.Panics(t, func() {
		e.Evaluate([]models.Disk{{Path: "/data", Free: 0, Total: 0}}, models.Thresholds{Percent: 5, Bytes: 10 * gb})
	})
}
