package usecase

import (
	"context"
	"strings"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/domain/repository"
	"tripcollab/internal/infrastructure/ratelimit"
	"tripcollab/pkg/errors"
)

type WaitlistUseCase struct {
	waitlistRepo repository.WaitlistRepository
	rateLimiter  *ratelimit.RateLimiter
}

func NewWaitlistUseCase(waitlistRepo repository.WaitlistRepository) *WaitlistUseCase {
	return &WaitlistUseCase{
		waitlistRepo: waitlistRepo,
		rateLimiter:  ratelimit.NewRateLimiter(),
	}
}

type JoinWaitlistInput struct {
	Email   string
	Name    string
	Role    string
	Company string
	Socials string
	Source  string
}

// Join records a signup from the public landing pages. Unauthenticated, so
// it is rate limited by caller IP and deduplicated by email.
func (uc *WaitlistUseCase) Join(ctx context.Context, remoteIP string, input JoinWaitlistInput) (*entity.WaitlistEntry, error) {
	if allowed, _ := uc.rateLimiter.Allow(remoteIP, "waitlist_signup"); !allowed {
		return nil, errors.TooManyRequests("Too many signups from this address")
	}

	if input.Role != entity.RoleCreator && input.Role != entity.RoleBrand {
		return nil, errors.BadRequest("Role must be creator or brand", nil)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, errors.BadRequest("Email is required", nil)
	}

	if existing, err := uc.waitlistRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		// Signing up twice is fine, return the original entry.
		return existing, nil
	}

	entry := &entity.WaitlistEntry{
		Email:   email,
		Name:    input.Name,
		Role:    input.Role,
		Company: input.Company,
		Socials: input.Socials,
		Source:  input.Source,
	}
	if err := uc.waitlistRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
