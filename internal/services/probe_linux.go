//go:build linux

package services

import (
	"context"

	"diskwarden/internal/models"

	"golang.org/x/sys/unix"
)

// StatfsProber queries the kernel via statfs(2).
type StatfsProber struct{}

// NewProber returns the production capacity probe for this platform.
func NewProber() Prober { return &StatfsProber{} }

func (StatfsProber) Probe(_ context.Context, path string) (models.Disk, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return models.Disk{}, &ProbeError{Path: path, Err: err}
	}

	// Block counts are expressed in fragment-size units. Bsize is only the
	// preferred I/O size and can differ on some filesystems, which would
	// undercount capacity.
	frsize := uint64(st.Frsize)
	return models.Disk{
		Path:  path,
		Free:  st.Bfree * frsize,
		Total: st.Blocks * frsize,
	}, nil
}
