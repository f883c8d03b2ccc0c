package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/foodgram-backend/internal/platform/envutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresName     string

	SQLitePath string
}

// ConfigFromEnv reads DB_DRIVER, POSTGRES_* and SQLITE_PATH.
func ConfigFromEnv() Config {
	return Config{
		Driver:           strings.ToLower(envutil.String("DB_DRIVER", DriverPostgres)),
		PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
		PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
		PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
		PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
		PostgresName:     envutil.String("POSTGRES_NAME", "foodgram"),
		SQLitePath:       envutil.String("SQLITE_PATH", "foodgram.db"),
	}
}

func (c Config) postgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresName,
	)
}

// SQLiteDSN turns a file path (or ":memory:") into a DSN with foreign keys on.
func SQLiteDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?cache=shared&_foreign_keys=on"
	}
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000"
}

type Service struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

func NewService(logg *logger.Logger, cfg Config) (*Service, error) {
	serviceLog := logg.With("service", "DBService", "driver", cfg.Driver)

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	gcfg := &gorm.Config{Logger: gormLog}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres, "":
		dialector = postgres.Open(cfg.postgresDSN())
	case DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(cfg.SQLitePath))
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}
	serviceLog.Info("Database connected")
	return &Service{db: db, driver: cfg.Driver, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Running auto migration")
	return AutoMigrateAll(s.db)
}

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
