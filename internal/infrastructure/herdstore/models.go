package herdstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lacteos-api/internal/domain/entity"
)

type cowModel struct {
	ID              string     `gorm:"primaryKey;size:36"`
	TagNumber       string     `gorm:"size:50;uniqueIndex;not null"`
	Name            string     `gorm:"size:100"`
	Breed           string     `gorm:"size:100"`
	BirthDate       *time.Time `gorm:"type:date"`
	Status          string     `gorm:"size:20;index;not null"`
	LactationNumber int
	Notes           string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (cowModel) TableName() string { return "cows" }

type milkRecordModel struct {
	ID         string          `gorm:"primaryKey;size:36"`
	CowID      string          `gorm:"size:36;not null;uniqueIndex:ux_milk_cow_date_shift,priority:1"`
	Date       time.Time       `gorm:"type:date;not null;index;uniqueIndex:ux_milk_cow_date_shift,priority:2"`
	Shift      string          `gorm:"size:10;not null;uniqueIndex:ux_milk_cow_date_shift,priority:3"`
	Liters     decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	FatPct     decimal.Decimal `gorm:"type:decimal(5,2)"`
	ProteinPct decimal.Decimal `gorm:"type:decimal(5,2)"`
	RecordedBy string          `gorm:"size:36"`
	CreatedAt  time.Time
}

func (milkRecordModel) TableName() string { return "milk_records" }

type healthRecordModel struct {
	ID            string          `gorm:"primaryKey;size:36"`
	CowID         string          `gorm:"size:36;not null;index"`
	Date          time.Time       `gorm:"type:date;not null"`
	Type          string          `gorm:"size:20;not null"`
	Diagnosis     string          `gorm:"size:500"`
	Treatment     string          `gorm:"size:500"`
	Veterinarian  string          `gorm:"size:200"`
	Cost          decimal.Decimal `gorm:"type:decimal(10,2)"`
	NextCheckDate *time.Time      `gorm:"type:date"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (healthRecordModel) TableName() string { return "health_records" }

type feedRecordModel struct {
	ID         string          `gorm:"primaryKey;size:36"`
	CowID      string          `gorm:"size:36;index"`
	Date       time.Time       `gorm:"type:date;not null;index"`
	FeedType   string          `gorm:"size:100;not null"`
	QuantityKg decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Cost       decimal.Decimal `gorm:"type:decimal(10,2)"`
	CreatedAt  time.Time
}

func (feedRecordModel) TableName() string { return "feed_records" }

func cowFromEntity(c *entity.Cow) cowModel {
	return cowModel{
		ID: c.ID, TagNumber: c.TagNumber, Name: c.Name, Breed: c.Breed, BirthDate: c.BirthDate,
		Status: c.Status, LactationNumber: c.LactationNumber, Notes: c.Notes,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (m cowModel) toEntity() *entity.Cow {
	return &entity.Cow{
		ID: m.ID, TagNumber: m.TagNumber, Name: m.Name, Breed: m.Breed, BirthDate: m.BirthDate,
		Status: m.Status, LactationNumber: m.LactationNumber, Notes: m.Notes,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func milkFromEntity(r *entity.MilkRecord) milkRecordModel {
	return milkRecordModel{
		ID: r.ID, CowID: r.CowID, Date: r.Date, Shift: r.Shift, Liters: r.Liters,
		FatPct: r.FatPct, ProteinPct: r.ProteinPct, RecordedBy: r.RecordedBy, CreatedAt: r.CreatedAt,
	}
}

func (m milkRecordModel) toEntity() *entity.MilkRecord {
	return &entity.MilkRecord{
		ID: m.ID, CowID: m.CowID, Date: m.Date, Shift: m.Shift, Liters: m.Liters,
		FatPct: m.FatPct, ProteinPct: m.ProteinPct, RecordedBy: m.RecordedBy, CreatedAt: m.CreatedAt,
	}
}

func healthFromEntity(r *entity.HealthRecord) healthRecordModel {
	return healthRecordModel{
		ID: r.ID, CowID: r.CowID, Date: r.Date, Type: r.Type, Diagnosis: r.Diagnosis, Treatment: r.Treatment,
		Veterinarian: r.Veterinarian, Cost: r.Cost, NextCheckDate: r.NextCheckDate,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (m healthRecordModel) toEntity() *entity.HealthRecord {
	return &entity.HealthRecord{
		ID: m.ID, CowID: m.CowID, Date: m.Date, Type: m.Type, Diagnosis: m.Diagnosis, Treatment: m.Treatment,
		Veterinarian: m.Veterinarian, Cost: m.Cost, NextCheckDate: m.NextCheckDate,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func feedFromEntity(r *entity.FeedRecord) feedRecordModel {
	return feedRecordModel{
		ID: r.ID, CowID: r.CowID, Date: r.Date, FeedType: r.FeedType, QuantityKg: r.QuantityKg,
		Cost: r.Cost, CreatedAt: r.CreatedAt,
	}
}

func (m feedRecordModel) toEntity() *entity.FeedRecord {
	return &entity.FeedRecord{
		ID: m.ID, CowID: m.CowID, Date: m.Date, FeedType: m.FeedType, QuantityKg: m.QuantityKg,
		Cost: m.Cost, CreatedAt: m.CreatedAt,
	}
}
