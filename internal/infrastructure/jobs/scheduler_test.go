package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/infrastructure/jobs"
	"github.com/jhoicas/lacteos-api/pkg/config"
	"github.com/jhoicas/lacteos-api/pkg/logger"
)

type fakeOverdue struct {
	n     int64
	err   error
	panic bool
	calls int
}

func (f *fakeOverdue) MarkOverdue(context.Context) (int64, error) {
	f.calls++
	if f.panic {
		panic("boom")
	}
	return f.n, f.err
}

type fakeLowStock struct {
	items []dto.ProductResponse
}

func (f *fakeLowStock) LowStock(context.Context) ([]dto.ProductResponse, error) {
	return f.items, nil
}

func defaultCfg() config.JobsConfig {
	return config.JobsConfig{Enabled: true, Location: "UTC", OverdueSpec: "@daily", LowStockSpec: "@every 1h"}
}

func newScheduler(t *testing.T, o jobs.OverdueMarker, l jobs.LowStockLister) (*jobs.Scheduler, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "debug", Output: &buf})
	s, err := jobs.New(defaultCfg(), o, l, log)
	require.NoError(t, err)
	return s, &buf
}

func TestNew_ExpresionInvalida(t *testing.T) {
	cfg := defaultCfg()
	cfg.OverdueSpec = "cada rato"
	_, err := jobs.New(cfg, &fakeOverdue{}, &fakeLowStock{}, nil)
	assert.ErrorContains(t, err, "JOBS_OVERDUE_SPEC")
}

func TestNew_ZonaInvalida(t *testing.T) {
	cfg := defaultCfg()
	cfg.Location = "Marte/Olympus"
	_, err := jobs.New(cfg, &fakeOverdue{}, &fakeLowStock{}, nil)
	assert.ErrorContains(t, err, "JOBS_LOCATION")
}

func TestRunOverdue_RegistraCantidad(t *testing.T) {
	o := &fakeOverdue{n: 3}
	s, buf := newScheduler(t, o, &fakeLowStock{})

	s.RunOverdue(context.Background())

	assert.Equal(t, 1, o.calls)
	assert.Contains(t, buf.String(), `"invoices":3`)
}

func TestRunOverdue_Error(t *testing.T) {
	s, buf := newScheduler(t, &fakeOverdue{err: errors.New("db caída")}, &fakeLowStock{})

	s.RunOverdue(context.Background())

	assert.Contains(t, buf.String(), "db caída")
}

func TestRunOverdue_RecuperaPanico(t *testing.T) {
	s, buf := newScheduler(t, &fakeOverdue{panic: true}, &fakeLowStock{})

	assert.NotPanics(t, func() { s.RunOverdue(context.Background()) })
	assert.Contains(t, buf.String(), "boom")
}

func TestRunLowStock_UnWarningPorProducto(t *testing.T) {
	l := &fakeLowStock{items: []dto.ProductResponse{
		{ID: "p-1", SKU: "LEC-1", CurrentStock: 2, MinStock: 10},
		{ID: "p-2", SKU: "QUE-1", CurrentStock: 0, MinStock: 5},
	}}
	s, buf := newScheduler(t, &fakeOverdue{}, l)

	s.RunLowStock(context.Background())

	out := buf.String()
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("producto con stock bajo")))
	assert.Contains(t, out, `"sku":"QUE-1"`)
}

func TestStartStop(t *testing.T) {
	s, _ := newScheduler(t, &fakeOverdue{}, &fakeLowStock{})
	s.Start()
	s.Stop(context.Background())
}
