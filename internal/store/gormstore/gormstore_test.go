package gormstore

import (
	"os"
	"testing"

	"music-catalog/database"
	"music-catalog/internal/platform/logger"
	"music-catalog/internal/store"
	"music-catalog/internal/store/storetest"

	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, "file::memory:", logger.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestSQLiteStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) (store.ArtistStore, store.AlbumStore) {
		db := openSQLite(t)
		log := logger.Nop()
		return NewArtistStore(db, log), NewAlbumStore(db, log)
	})
}

// TestPostgresStoreContract runs against a disposable database; every subtest
// truncates the catalog tables first.
func TestPostgresStoreContract(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	db, err := database.Open(database.DriverPostgres, dsn, logger.Nop())
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}

	storetest.Run(t, func(t *testing.T) (store.ArtistStore, store.AlbumStore) {
		if err := db.Exec("TRUNCATE albums, artists RESTART IDENTITY CASCADE").Error; err != nil {
			t.Fatalf("truncate: %v", err)
		}
		log := logger.Nop()
		return NewArtistStore(db, log), NewAlbumStore(db, log)
	})
}

func TestContainsPattern(t *testing.T) {
	cases := map[string]string{
		"Road":     "%road%",
		"  Road  ": "%road%",
		"100%":     `%100\%%`,
		"a_b":      `%a\_b%`,
		`c:\x`:     `%c:\\x%`,
		"":         "%%",
		"BJÖRK":    "%björk%",
	}
	for in, want := range cases {
		if got := containsPattern(in); got != want {
			t.Fatalf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}
