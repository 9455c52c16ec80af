package impl

import (
	"io"
	"log/slog"
	"time"

	"erp/internal/domain/entity"

	"github.com/google/uuid"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock() time.Time {
	return fixedNow
}

func newActiveUser(username string) *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "$2a$04$stored",
		IsActive:     true,
		CreatedAt:    fixedNow,
		UpdatedAt:    fixedNow,
	}
}

func strPtr(s string) *string { return &s }
