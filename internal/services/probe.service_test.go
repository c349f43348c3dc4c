package services

import (
	"context"
	"errors"
	"testing"

	"diskwarden/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProberReturnsConfiguredSample(t *testing.T) {
	p := &StaticProber{Disks: map[string]models.Disk{
		"/data": {Path: "/data", Free: 10 * gb, Total: 100 * gb},
	}}

	d, err := p.Probe(context.Background(), "/data")
	require.NoError(t, err)
	assert.Equal(t, uint64(10*gb), d.Free)
	assert.Equal(t, uint64(100*gb), d.Total)
}

func TestStaticProberReturnsConfiguredError(t *testing.T) {
	cause := errors.New("no such file or directory")
	p := &StaticProber{Errs: map[string]error{"/missing": cause}}

	_, err := p.Probe(context.Background(), "/missing")
	require.Error(t, err)

	var probeErr *ProbeError
	require.ErrorAs(t, err, &probeErr)
	assert.Equal(t, "/missing", probeErr.Path)
	assert.ErrorIs(t, err, cause)
}

func TestStaticProberUnknownPathFails(t *testing.T) {
	p := &StaticProber{}
	_, err := p.Probe(context.Background(), "/unknown")
	assert.Error(t, err)
}
