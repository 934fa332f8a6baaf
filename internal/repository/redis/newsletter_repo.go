package redis

import (
	"context"
	"fmt"

	"quantumworks-backend/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// SubscribersKey is the Redis set holding newsletter addresses
const SubscribersKey = "newsletter:subscribers"

type newsletterRepository struct {
	client goredis.UniversalClient
}

func NewNewsletterRepository(client goredis.UniversalClient) domain.NewsletterRepository {
	return &newsletterRepository{client: client}
}

func (r *newsletterRepository) Add(ctx context.Context, email string) (bool, error) {
	added, err := r.client.SAdd(ctx, SubscribersKey, email).Result()
	if err != nil {
		return false, fmt.Errorf("redis sadd: %w", err)
	}
	return added == 1, nil
}

func (r *newsletterRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.client.SCard(ctx, SubscribersKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis scard: %w", err)
	}
	return n, nil
}
