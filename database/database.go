package database

import (
	"fmt"
	"strings"
	"time"

	"music-catalog/internal/domain/catalog"
	"music-catalog/internal/platform/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// gormWriter feeds gorm's log lines into the application logger.
type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func newGormLogger(log *logger.Logger) gormLogger.Interface {
	return gormLogger.New(
		gormWriter{log: log.With("component", "gorm")},
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Open connects to driver/dsn with duplicate-key errors translated to
// gorm.ErrDuplicatedKey. It does not migrate.
func Open(driver, dsn string, log *logger.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log),
	}

	switch strings.ToLower(driver) {
	case DriverPostgres:
		return gorm.Open(postgres.Open(dsn), cfg)
	case DriverSQLite:
		db, err := gorm.Open(sqlite.Open(dsn), cfg)
		if err != nil {
			return nil, err
		}
		// one connection: sqlite serialises writers anyway, and an in-memory
		// database only exists inside the connection that created it
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// Migrate creates the catalog tables and the indexes gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&catalog.Artist{},
		&catalog.Album{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	if err := backfillNameKeys(db); err != nil {
		return err
	}

	// live artist names are unique by their folded key; the older LOWER(name)
	// index only folded ASCII on sqlite
	if err := db.Exec(`DROP INDEX IF EXISTS idx_artists_live_name`).Error; err != nil {
		return fmt.Errorf("drop artist name index: %w", err)
	}
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_artists_live_name_key
		ON artists (name_key) WHERE is_deleted = false`).Error; err != nil {
		return fmt.Errorf("create artist name index: %w", err)
	}
	return nil
}

// backfillNameKeys fills name_key on rows written before the column existed.
// The fold is done in Go so every driver gets the same key.
func backfillNameKeys(db *gorm.DB) error {
	var artists []catalog.Artist
	if err := db.Where("name_key = ?", "").Find(&artists).Error; err != nil {
		return fmt.Errorf("load artists without name_key: %w", err)
	}
	for _, a := range artists {
		if err := db.Model(&catalog.Artist{}).Where("id = ?", a.ID).
			Update("name_key", catalog.FoldName(a.Name)).Error; err != nil {
			return fmt.Errorf("backfill artist %d name_key: %w", a.ID, err)
		}
	}

	var albums []catalog.Album
	if err := db.Where("name_key = ?", "").Find(&albums).Error; err != nil {
		return fmt.Errorf("load albums without name_key: %w", err)
	}
	for _, a := range albums {
		if err := db.Model(&catalog.Album{}).Where("id = ?", a.ID).
			Update("name_key", catalog.FoldName(a.Name)).Error; err != nil {
			return fmt.Errorf("backfill album %d name_key: %w", a.ID, err)
		}
	}
	return nil
}

func InitDB(driver, dsn string, log *logger.Logger) *gorm.DB {
	db, err := Open(driver, dsn, log)
	if err != nil {
		log.Fatal("Failed to connect to database", "driver", driver, "error", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatal("Failed to migrate database", "error", err)
	}

	log.Info("Connected and migrated successfully", "driver", driver)
	return db
}
