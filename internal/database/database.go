package database

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"techmarket/internal/config"
	"techmarket/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed init.sql
var initScript string

// Open connects to the configured store and tunes the connection pool.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.LogQueries {
		level = logger.Info
	}
	gormConfig := &gorm.Config{
		Logger:         NewLogger(level, 200*time.Millisecond),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "sqlite":
		return OpenSQLite(cfg.GetDSN(), gormConfig)
	default:
		db, err = gorm.Open(postgres.Open(cfg.GetDSN()), gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	zap.L().Info("database connection established", zap.String("driver", cfg.Driver))
	return db, nil
}

// OpenSQLite opens a SQLite store and creates the schema from the model tags.
// A nil gormConfig uses a silent logger. Foreign keys are always enforced.
// The pool is limited to a single connection so shared-cache in-memory
// databases never see lock contention.
func OpenSQLite(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	if gormConfig == nil {
		gormConfig = &gorm.Config{
			Logger:         NewLogger(logger.Silent, 0),
			TranslateError: true,
		}
	}
	db, err := gorm.Open(sqlite.Open(WithForeignKeys(dsn)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// WithForeignKeys adds the sqlite3 driver flag that turns on foreign key
// enforcement, which SQLite leaves off per connection by default.
func WithForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// AutoMigrate creates the schema from the model definitions.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.User{}, &models.Review{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// InitSchema provisions the Postgres schema from the bundled init script.
// Every statement is idempotent, so it runs on each start.
func InitSchema(db *gorm.DB) error {
	statements := SplitStatements(initScript)
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range statements {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to execute init statement %q: %w", firstLine(stmt), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	zap.L().Info("database schema initialized", zap.Int("statements", len(statements)))
	return nil
}

// SplitStatements breaks a SQL script into individual statements. The init
// script holds no semicolons inside literals, so splitting on ';' is enough.
func SplitStatements(script string) []string {
	var statements []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// Ping checks that the store is reachable.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func firstLine(stmt string) string {
	return strings.SplitN(stmt, "\n", 2)[0]
}
