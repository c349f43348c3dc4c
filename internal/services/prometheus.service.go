package services

import (
	"diskwarden/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	diskFreeBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "diskwarden_disk_free_bytes",
		Help: "Free bytes on a watched path.",
	}, []string{"path"})

	diskTotalBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "diskwarden_disk_total_bytes",
		Help: "Total bytes on a watched path.",
	}, []string{"path"})

	storageSpaceAlert = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "diskwarden_storage_space_alert",
		Help: "1 when any watched disk is at or below its free-space floor.",
	})

	refreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "diskwarden_refreshes_total",
		Help: "Completed refresh cycles.",
	})
)

// RecordSnapshot exports a completed snapshot to the Prometheus registry.
// Wire it up with Monitor.OnUpdate.
func RecordSnapshot(st models.LocalState) {
	for _, d := range st.Disks {
		diskFreeBytes.WithLabelValues(d.Path).Set(float64(d.Free))
		diskTotalBytes.WithLabelValues(d.Path).Set(float64(d.Total))
	}
	if st.StorageSpaceAlert == models.AlertLowSpace {
		storageSpaceAlert.Set(1)
	} else {
		storageSpaceAlert.Set(0)
	}
	refreshesTotal.Inc()
}
