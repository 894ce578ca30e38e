package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

func newSessionRepository() *sessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*model.Session),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.ID == "" {
		return nil, goerr.New("session ID is required")
	}
	if _, exists := r.sessions[session.ID]; exists {
		return nil, goerr.New("session already exists", goerr.V("id", session.ID))
	}

	now := time.Now().UTC()
	created := session.Clone()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.sessions[created.ID] = created
	return created.Clone(), nil
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrSessionNotFound, "session not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	return session.Clone(), nil
}

func (r *sessionRepository) Put(ctx context.Context, session *model.Session) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.sessions[session.ID]
	if !exists {
		return nil, goerr.Wrap(types.ErrSessionNotFound, "session not found", goerr.V("id", session.ID))
	}

	updated := session.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.sessions[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		return goerr.Wrap(types.ErrSessionNotFound, "session not found", goerr.V("id", id))
	}

	delete(r.sessions, id)
	return nil
}

func (r *sessionRepository) List(ctx context.Context) ([]*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*model.Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		sessions = append(sessions, session.Clone())
	}

	return sessions, nil
}
