// Package production reglas de lotes: transiciones de estado y control de calidad.
package production

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/domain"
	"github.com/jhoicas/lacteos-api/internal/domain/entity"
)

// Rangos aceptables para leche pasteurizada refrigerada.
var (
	MinTemperature = decimal.NewFromInt(2)
	MaxTemperature = decimal.NewFromInt(8)
	MinPH          = decimal.RequireFromString("6.4")
	MaxPH          = decimal.RequireFromString("6.8")
)

// MaxBacteria UFC/ml máximo (exclusivo).
const MaxBacteria int64 = 100000

var batchTransitions = map[string][]string{
	entity.BatchStatusPending:    {entity.BatchStatusInProgress, entity.BatchStatusCancelled},
	entity.BatchStatusInProgress: {entity.BatchStatusCompleted, entity.BatchStatusFailed, entity.BatchStatusCancelled},
}

// ValidateBatchTransition pending -> in-progress -> completed/failed/cancelled.
func ValidateBatchTransition(from, to string) error {
	for _, next := range batchTransitions[from] {
		if next == to {
			return nil
		}
	}
	return &domain.TransitionError{Entity: "batch", From: from, To: to}
}

// EvaluateQuality marca Passed según los rangos de temperatura, pH y carga bacteriana.
func EvaluateQuality(qc *entity.QualityChecks) {
	tempOK := qc.Temperature.GreaterThanOrEqual(MinTemperature) && qc.Temperature.LessThanOrEqual(MaxTemperature)
	phOK := qc.PH.GreaterThanOrEqual(MinPH) && qc.PH.LessThanOrEqual(MaxPH)
	qc.Passed = tempOK && phOK && qc.Bacteria >= 0 && qc.Bacteria < MaxBacteria
}
