// Package herdstore implementa el almacén del hato sobre MySQL con gorm.
// Es un backend independiente de PostgreSQL: se habilita solo si HERD_DB_DSN está definido.
package herdstore

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/lacteos-api/pkg/config"
	"github.com/jhoicas/lacteos-api/pkg/logger"
)

// Open abre la conexión, ajusta el pool y migra las tablas del hato.
func Open(cfg config.HerdDBConfig, log *logger.Logger) (*gorm.DB, error) {
	if log == nil {
		log = logger.Nop()
	}
	db, err := gorm.Open(mysql.Open(withParseTime(cfg.DSN)), &gorm.Config{
		Logger: gormlogger.New(log.Component("herd-db").Zerolog(), gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("abrir herd db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("herd db pool: %w", err)
	}
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 5
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&cowModel{}, &milkRecordModel{}, &healthRecordModel{}, &feedRecordModel{}); err != nil {
		return nil, fmt.Errorf("migrar herd db: %w", err)
	}
	return db, nil
}

// withParseTime garantiza parseTime=true para que DATE/DATETIME se lean como time.Time.
func withParseTime(dsn string) string {
	if strings.Contains(dsn, "parseTime=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&parseTime=true"
	}
	return dsn + "?parseTime=true"
}
