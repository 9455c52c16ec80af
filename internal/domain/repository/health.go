package repository

import "context"

// DatabaseHealth reports whether the backing store is reachable.
type DatabaseHealth interface {
	Ping(ctx context.Context) error
	Driver() string
}
