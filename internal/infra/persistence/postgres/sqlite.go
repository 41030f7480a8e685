package postgres

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const defaultSQLitePath = "postboard.db"

// NewSQLite opens the embedded store used by `storage.driver: sqlite`. It runs the
// same repositories as PostgreSQL.
func NewSQLite(params Params) (*gorm.DB, error) {
	path := defaultSQLitePath
	if params.Config.SQLite != nil && strings.TrimSpace(params.Config.SQLite.Path) != "" {
		path = params.Config.SQLite.Path
	}

	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormLogger(params.Logger, params.Config),
	})

	return manage(params, db, "SQLite")
}

// OpenSQLite opens a SQLite database file, creating its directory when needed.
func OpenSQLite(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create sqlite dir %q", dir)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	// SQLite serializes writers; one connection avoids "database is locked" under load.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
