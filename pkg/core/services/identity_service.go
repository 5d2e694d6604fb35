package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
	"github.com/nattawatp/ai-tools-navigator/pkg/ports"
)

type IdentityService struct {
	repo ports.DirectoryRepository
	// bootstrapAdminEmail is promoted to admin at sign-in so a fresh
	// deployment has at least one administrator.
	bootstrapAdminEmail string
}

func NewIdentityService(repo ports.DirectoryRepository, bootstrapAdminEmail string) *IdentityService {
	return &IdentityService{repo: repo, bootstrapAdminEmail: bootstrapAdminEmail}
}

// SignIn upserts the profile for a verified external identity. Existing
// profiles keep their role; new ones start as plain users unless the
// email matches the bootstrap admin, or they are the first profile of a
// deployment with no bootstrap email configured.
func (s *IdentityService) SignIn(ctx context.Context, email, name string) (*domain.Profile, error) {
	if email == "" {
		return nil, &domain.ValidationError{Field: "email", Reason: "required"}
	}

	existing, err := s.repo.GetProfileByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if name != "" && name != existing.Name {
			existing.Name = name
			if err := s.repo.UpsertProfile(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	role := domain.RoleUser
	if s.bootstrapAdminEmail != "" {
		if strings.EqualFold(email, s.bootstrapAdminEmail) {
			role = domain.RoleAdmin
		}
	} else {
		// No bootstrap email configured: the very first profile
		// becomes the administrator.
		count, err := s.repo.CountProfiles(ctx)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			role = domain.RoleAdmin
		}
	}

	profile := &domain.Profile{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Resolve maps a profile id to the current actor, reading the role from
// the store. Unknown or empty ids resolve to the anonymous actor.
func (s *IdentityService) Resolve(ctx context.Context, profileID string) domain.Actor {
	return resolveActor(ctx, s.repo, profileID)
}

// resolveActor is the single place the actor's role is read. It is
// called per request so a revoked admin loses the capability on the
// next call, not at session expiry.
func resolveActor(ctx context.Context, repo ports.DirectoryRepository, profileID string) domain.Actor {
	if profileID == "" {
		return domain.Anonymous
	}
	profile, err := repo.GetProfile(ctx, profileID)
	if err != nil || profile == nil {
		return domain.Anonymous
	}
	return domain.Actor{ID: profile.ID, Role: profile.Role}
}

// requireAdmin gates mutating catalog operations. The client-side check
// is a convenience; the store remains the authority of last resort.
func requireAdmin(ctx context.Context, repo ports.DirectoryRepository, actorID string) error {
	actor := resolveActor(ctx, repo, actorID)
	if !actor.Authenticated() {
		return domain.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// requireUser gates operations any signed-in user may perform.
func requireUser(ctx context.Context, repo ports.DirectoryRepository, actorID string) error {
	if !resolveActor(ctx, repo, actorID).Authenticated() {
		return domain.ErrUnauthorized
	}
	return nil
}
