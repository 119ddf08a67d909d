package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups that match nothing.
var ErrNotFound = errors.New("store: not found")

// Store is the persistence surface shared by every handler. Two
// implementations exist: MemStore (default) and PGStore (when a
// DATABASE_URL is configured). Handlers receive a Store explicitly so
// tests can run against isolated instances.
type Store interface {
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	CreateUser(ctx context.Context, u User) (User, error)

	CreateAnalysis(ctx context.Context, a Analysis) (Analysis, error)
	GetAnalysisByID(ctx context.Context, id int) (Analysis, error)
	GetAnalysesByUserID(ctx context.Context, userID int) ([]Analysis, error)

	CreateContactRequest(ctx context.Context, r ContactRequest) (ContactRequest, error)
	GetContactRequests(ctx context.Context) ([]ContactRequest, error)
	UpdateContactRequest(ctx context.Context, id int, resolved bool) (ContactRequest, error)

	CreateSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	DeleteSession(ctx context.Context, id string) error

	Counts(ctx context.Context) (Stats, error)
}
