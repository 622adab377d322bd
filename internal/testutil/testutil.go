// Package testutil opens throwaway databases and loggers for package tests.
package testutil

import (
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Migration func(db *gorm.DB) error

// OpenDB returns an in-memory SQLite database with the given migrations applied.
// The pool is pinned to one connection so the in-memory database is shared by every query.
func OpenDB(t testing.TB, migrations ...Migration) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	for _, migrate := range migrations {
		require.NoError(t, migrate(db))
	}
	return db
}

func Logger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
