package services

import (
	"context"
	"fmt"

	"diskwarden/internal/models"
)

// ProbeError wraps a failed capacity query for a single path.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// Prober samples the free/total capacity of one storage location. Probe may
// block on a filesystem-statistics syscall; callers run it off the reader
// path.
type Prober interface {
	Probe(ctx context.Context, path string) (models.Disk, error)
}

// StaticProber returns canned samples keyed by path. It never touches the
// filesystem, which makes monitor and evaluator logic testable anywhere.
type StaticProber struct {
	Disks map[string]models.Disk
	Errs  map[string]error
}

func (p *StaticProber) Probe(_ context.Context, path string) (models.Disk, error) {
	if err, ok := p.Errs[path]; ok {
		return models.Disk{}, &ProbeError{Path: path, Err: err}
	}
	if d, ok := p.Disks[path]; ok {
		return d, nil
	}
	return models.Disk{}, &ProbeError{Path: path, Err: fmt.Errorf("no sample configured")}
}
