package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"offerboard/internal/domain"
)

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// sqliteBusyTimeout is how long a SQLite statement waits on a locked
// database before failing with SQLITE_BUSY.
const sqliteBusyTimeout = 5 * time.Second

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// sqliteDSN adds the busy_timeout pragma unless the caller already set one.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)", dsn, sep, sqliteBusyTimeout.Milliseconds())
}

// Connect opens PostgreSQL for postgres:// DSNs and the pure-Go SQLite driver
// for anything else (a file path or a file: URI).
//
// SQLite has a single writer, so its pool is pinned to one connection
// whatever pool.MaxOpenConns says; writers queue in database/sql instead of
// failing with SQLITE_BUSY.
func Connect(dsn string, pool PoolConfig) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	var (
		db  *gorm.DB
		err error
	)
	sqlite := !isPostgres(dsn)
	if sqlite {
		slog.Info("using SQLite", "dsn", dsn)
		db, err = gorm.Open(gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        sqliteDSN(dsn),
		}), cfg)
	} else {
		slog.Info("connecting to PostgreSQL")
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	switch {
	case sqlite:
		if pool.MaxOpenConns > 1 {
			slog.Warn("SQLite uses a single connection", "requested", pool.MaxOpenConns)
		}
		sqlDB.SetMaxOpenConns(1)
	case pool.MaxOpenConns > 0:
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	return db, nil
}

// Models lists every table this service owns or reads.
func Models() []any {
	return []any{
		&domain.Category{},
		&domain.Enterprise{},
		&domain.User{},
		&domain.FollowedCompany{},
		&domain.Offer{},
		&domain.OfferFavorite{},
		&domain.OfferComment{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := backfillTitleSearch(db); err != nil {
		return fmt.Errorf("backfill title_search: %w", err)
	}
	return nil
}

// backfillTitleSearch fills title_search for offers stored before the column
// existed. Lowercasing happens in Go so every store folds case the same way.
func backfillTitleSearch(db *gorm.DB) error {
	var batch []domain.Offer
	return db.Model(&domain.Offer{}).
		Select("id", "title").
		Where("title_search = '' AND title <> ''").
		FindInBatches(&batch, 500, func(_ *gorm.DB, _ int) error {
			for _, o := range batch {
				err := db.Model(&domain.Offer{}).
					Where("id = ?", o.ID).
					UpdateColumn("title_search", strings.ToLower(o.Title)).Error
				if err != nil {
					return err
				}
			}
			return nil
		}).Error
}
