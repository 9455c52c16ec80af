package gormrepo

import (
	"context"

	"erp/config"
	"erp/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type databaseHealth struct {
	db     *gorm.DB
	driver string
}

// NewDatabaseHealth reports reachability of the configured database.
func NewDatabaseHealth(db *gorm.DB, cfg *config.Config) repository.DatabaseHealth {
	return &databaseHealth{db: db, driver: databaseDriver(cfg)}
}

func (h *databaseHealth) Driver() string {
	return h.driver
}

func (h *databaseHealth) Ping(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(sqlDB.PingContext(ctx))
}
