package utils

import (
	"context"

	"carwash-marketplace/internal/data/entity"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func GetRoleFromContext(ctx context.Context) (entity.Role, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(entity.Role)
	return role, ok
}

func SetUserContext(ctx context.Context, userID uuid.UUID, role entity.Role) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

// GetPrincipalFromContext returns the authenticated actor set by the auth middleware
func GetPrincipalFromContext(ctx context.Context) (entity.Principal, bool) {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return entity.Principal{}, false
	}

	role, ok := GetRoleFromContext(ctx)
	if !ok {
		return entity.Principal{}, false
	}

	return entity.Principal{ID: userID, Role: role}, true
}
