package testutil

import (
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	dbpkg "github.com/yungbote/foodgram-backend/internal/data/db"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

var (
	pgOnce sync.Once
	pgDB   *gorm.DB
	pgErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a migrated database. When TEST_POSTGRES_DSN is set every test
// shares one postgres connection pool; otherwise each test gets its own
// in-memory sqlite database with foreign keys enforced.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		return postgresDB(tb, dsn)
	}
	return SQLite(tb)
}

func SQLite(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	// in-memory sqlite: one connection, one writer.
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := dbpkg.AutoMigrateAll(db); err != nil {
		tb.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func postgresDB(tb testing.TB, dsn string) *gorm.DB {
	tb.Helper()
	pgOnce.Do(func() {
		var err error
		pgDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			pgErr = err
			return
		}
		pgErr = dbpkg.AutoMigrateAll(pgDB)
	})
	if pgErr != nil {
		tb.Fatalf("failed to init test db: %v", pgErr)
	}
	return pgDB
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
