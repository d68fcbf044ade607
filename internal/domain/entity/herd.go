package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una vaca del hato.
const (
	CowStatusActive   = "active"
	CowStatusDry      = "dry"
	CowStatusSick     = "sick"
	CowStatusSold     = "sold"
	CowStatusDeceased = "deceased"
)

// Turnos de ordeño.
const (
	MilkShiftMorning = "morning"
	MilkShiftEvening = "evening"
)

// Tipos de registro sanitario.
const (
	HealthVaccination = "vaccination"
	HealthTreatment   = "treatment"
	HealthCheckup     = "checkup"
	HealthInjury      = "injury"
)

// Cow animal del hato lechero.
type Cow struct {
	ID              string
	TagNumber       string // arete, único
	Name            string
	Breed           string
	BirthDate       *time.Time
	Status          string
	LactationNumber int
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MilkRecord producción de un ordeño.
type MilkRecord struct {
	ID         string
	CowID      string
	Date       time.Time
	Shift      string
	Liters     decimal.Decimal
	FatPct     decimal.Decimal
	ProteinPct decimal.Decimal
	RecordedBy string
	CreatedAt  time.Time
}

// HealthRecord evento sanitario de una vaca.
type HealthRecord struct {
	ID            string
	CowID         string
	Date          time.Time
	Type          string
	Diagnosis     string
	Treatment     string
	Veterinarian  string
	Cost          decimal.Decimal
	NextCheckDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FeedRecord suministro de alimento; CowID vacío = todo el hato.
type FeedRecord struct {
	ID         string
	CowID      string
	Date       time.Time
	FeedType   string
	QuantityKg decimal.Decimal
	Cost       decimal.Decimal
	CreatedAt  time.Time
}

// MilkDailySummary producción agregada por día.
type MilkDailySummary struct {
	Date        time.Time
	TotalLiters decimal.Decimal
	Records     int
	Cows        int
}
