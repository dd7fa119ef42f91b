// pkg/utils/ctxutils.go

package utils

import (
	"context"

	"repair-system/pkg/contextkeys"
	apperrors "repair-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetRoleIDFromCtx(ctx context.Context) (uint64, error) {
	roleID, ok := ctx.Value(contextkeys.RoleIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return roleID, nil
}

// WithUser кладет пользователя в контекст так же, как это делает AuthMiddleware.
func WithUser(ctx context.Context, userID, roleID uint64) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.RoleIDKey, roleID)
}
