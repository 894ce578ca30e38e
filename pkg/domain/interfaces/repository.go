package interfaces

import (
	"context"

	"github.com/secmon-lab/themis/pkg/domain/model"
)

// Repository aggregates the persistence interfaces used by the service
type Repository interface {
	Session() SessionRepository
	Close() error
}

// SessionRepository stores assessment sessions. Sessions live only for a
// single walkthrough; implementations are expected to be in-memory.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) (*model.Session, error)
	Get(ctx context.Context, id string) (*model.Session, error)
	Put(ctx context.Context, session *model.Session) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*model.Session, error)
}
