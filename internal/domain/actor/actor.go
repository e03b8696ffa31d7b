package actor

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Role is the authority level carried in JWT claims. Directors may mutate
// salary structures directly; HR edits go through a change request.
type Role string

const (
	RoleHR       Role = "hr"
	RoleDirector Role = "director"
)

var (
	ErrMissingActor            = errors.New("actor identity missing from token")
	ErrDirectorAccessRequired  = errors.New("director access required")
	ErrUnknownRole             = errors.New("unknown actor role")
	ErrAuthorityCheckUnderflow = errors.New("actor role missing from token")
)

type Actor struct {
	UserID string
	Role   Role
}

// CanEditSalaryDirectly reports whether salary structure edits by this actor
// apply immediately or must go through a SalaryChangeRequest.
func (a Actor) CanEditSalaryDirectly() bool {
	return a.Role == RoleDirector
}

// FromContext extracts the acting user from JWT claims.
func FromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, ErrMissingActor
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return Actor{}, ErrAuthorityCheckUnderflow
	}

	role := Role(roleStr)
	if role != RoleHR && role != RoleDirector {
		return Actor{}, ErrUnknownRole
	}

	return Actor{UserID: userID, Role: role}, nil
}
