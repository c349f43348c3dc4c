//go:build !linux

package services

import (
	"context"

	"diskwarden/internal/models"

	"github.com/shirou/gopsutil/v3/disk"
)

// GopsutilProber is the portable capacity probe for platforms without
// statfs fragment-size semantics.
type GopsutilProber struct{}

// NewProber returns the production capacity probe for this platform.
func NewProber() Prober { return &GopsutilProber{} }

func (GopsutilProber) Probe(ctx context.Context, path string) (models.Disk, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return models.Disk{}, &ProbeError{Path: path, Err: err}
	}
	return models.Disk{
		Path:  path,
		Free:  usage.Free,
		Total: usage.Total,
	}, nil
}
