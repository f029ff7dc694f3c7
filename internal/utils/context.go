package utils

import (
	"context"

	"github.com/AbsensiKu/Absensi-Backend/internal/session"
)

type contextKey string

const ContextSessionKey contextKey = "sessionUser"

func WithSessionUser(ctx context.Context, u session.User) context.Context {
	return context.WithValue(ctx, ContextSessionKey, u)
}

func GetSessionUser(ctx context.Context) (session.User, bool) {
	u, ok := ctx.Value(ContextSessionKey).(session.User)
	return u, ok
}
