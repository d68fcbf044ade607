package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
	"github.com/jhoicas/lacteos-api/internal/domain"
)

func TestParseDate(t *testing.T) {
	d, ok, err := dto.ParseDate("2026-03-15")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), d)

	d, ok, err = dto.ParseDate("2026-03-15T10:30:00Z")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 10, d.Hour())

	_, ok, err = dto.ParseDate("")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = dto.ParseDate("15/03/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDefaultPage(t *testing.T) {
	p := dto.PageRequest{}
	p.DefaultPage()
	assert.Equal(t, 20, p.Limit)

	p = dto.PageRequest{Limit: 500, Offset: -3}
	p.DefaultPage()
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 0, p.Offset)
}
