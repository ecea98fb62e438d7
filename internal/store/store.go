// Package store implements the GORM-backed persistence layer. Stores are
// constructed with an already-open *gorm.DB and translate database
// errors into the apperr taxonomy: gorm.ErrRecordNotFound becomes
// NotFound and gorm.ErrDuplicatedKey (surfaced by TranslateError)
// becomes the authoritative duplicate signal, so uniqueness does not
// depend on a prior read.
package store

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

// Open connects to Postgres and configures the connection pool.
func Open(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	log.Info().Msg("database connection established")
	return db, nil
}

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
	)
}

// translate maps GORM errors onto the apperr taxonomy. The notFound and
// duplicate arguments supply the client-facing messages; a nil return
// means no error.
func translate(err error, notFound, duplicate *apperr.Error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if notFound != nil {
			return notFound.WithCause(err)
		}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		if duplicate != nil {
			return duplicate.WithCause(err)
		}
	}
	return apperr.Internal(err)
}
