package production_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
	"github.com/jhoicas/lacteos-api/internal/domain/production"
)

func TestValidateBatchTransition(t *testing.T) {
	assert.NoError(t, production.ValidateBatchTransition(entity.BatchStatusPending, entity.BatchStatusInProgress))
	assert.NoError(t, production.ValidateBatchTransition(entity.BatchStatusInProgress, entity.BatchStatusCompleted))
	assert.NoError(t, production.ValidateBatchTransition(entity.BatchStatusInProgress, entity.BatchStatusFailed))
	assert.NoError(t, production.ValidateBatchTransition(entity.BatchStatusPending, entity.BatchStatusCancelled))

	assert.ErrorIs(t, production.ValidateBatchTransition(entity.BatchStatusPending, entity.BatchStatusCompleted), domain.ErrInvalidTransition)
	assert.ErrorIs(t, production.ValidateBatchTransition(entity.BatchStatusCompleted, entity.BatchStatusInProgress), domain.ErrInvalidTransition)
}

func TestEvaluateQuality(t *testing.T) {
	cases := []struct {
		name     string
		temp, ph string
		bacteria int64
		passed   bool
	}{
		{"dentro de rango", "4", "6.6", 20000, true},
		{"límites inclusivos", "8", "6.4", 99999, true},
		{"temperatura alta", "9.5", "6.6", 20000, false},
		{"pH ácido", "4", "6.2", 20000, false},
		{"carga bacteriana", "4", "6.6", 100000, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qc := &entity.QualityChecks{
				Temperature: decimal.RequireFromString(tc.temp),
				PH:          decimal.RequireFromString(tc.ph),
				Bacteria:    tc.bacteria,
			}
			production.EvaluateQuality(qc)
			assert.Equal(t, tc.passed, qc.Passed)
		})
	}
}
