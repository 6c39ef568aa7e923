package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB wraps the GORM connection shared by the store implementations.
type DB struct {
	db *gorm.DB
}

// Connect opens a Postgres connection and migrates the schema.
func Connect(host string, port int, dbname, user, password string) (*DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		// Needed so unique-index violations surface as gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&PriceSnapshotRow{},
		&IndicatorSetRow{},
		&FibonacciRow{},
		&NewsEventRow{},
		&ThresholdRow{},
		&TradeRow{},
		&PerformanceRow{},
		&IndicatorEffectRow{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Gorm returns the underlying GORM instance for direct queries.
func (d *DB) Gorm() *gorm.DB {
	return d.db
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
