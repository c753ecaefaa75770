// Package gormstore is the relational catalog store. It runs on postgres in
// production and on sqlite locally and in tests.
//
// Names are compared on their name_key column (catalog.FoldName of the name);
// SQL LOWER only folds ASCII on sqlite. Uniqueness of live artist names is
// enforced by the partial unique index on name_key created in
// database.Migrate; the pre-checks here report a readable Conflict before the
// index has to. Row locks (ignored by sqlite, which serialises writers anyway)
// keep album inserts and artist deletes from interleaving.
package gormstore

import (
	"errors"
	"strings"

	"music-catalog/internal/domain/catalog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	lockForShare  = clause.Locking{Strength: "SHARE"}
	lockForUpdate = clause.Locking{Strength: "UPDATE"}
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into a LIKE pattern over a name_key column, matched
// with ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(catalog.FoldName(s)) + "%"
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
