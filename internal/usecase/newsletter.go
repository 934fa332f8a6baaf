package usecase

import (
	"context"
	"fmt"
	"strings"

	"quantumworks-backend/internal/domain"
	"quantumworks-backend/pkg/validation"
)

type newsletterUsecase struct {
	repo domain.NewsletterRepository
}

func NewNewsletterUsecase(repo domain.NewsletterRepository) domain.NewsletterUsecase {
	return &newsletterUsecase{repo: repo}
}

// Subscribe normalises the address (trimmed, lower-case) before storing it.
func (uc *newsletterUsecase) Subscribe(ctx context.Context, email string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if !validation.IsEmailShape(normalized) {
		return false, domain.ErrInvalidEmail
	}

	created, err := uc.repo.Add(ctx, normalized)
	if err != nil {
		return false, fmt.Errorf("failed to store subscriber: %w", err)
	}
	return created, nil
}
