package memory

import (
	"context"
	"sync"

	"quantumworks-backend/internal/domain"
)

// NewsletterRepository keeps subscribers in process memory. Used when Redis
// is not configured; contents are lost on restart.
type NewsletterRepository struct {
	mu     sync.Mutex
	emails map[string]struct{}
}

var _ domain.NewsletterRepository = (*NewsletterRepository)(nil)

func NewNewsletterRepository() *NewsletterRepository {
	return &NewsletterRepository{emails: make(map[string]struct{})}
}

func (r *NewsletterRepository) Add(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.emails[email]; ok {
		return false, nil
	}
	r.emails[email] = struct{}{}
	return true, nil
}

func (r *NewsletterRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.emails)), nil
}
