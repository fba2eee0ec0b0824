package middleware

import (
	"context"

	"github.com/growly/growly-web/internal/users"
)

type contextKey string

const (
	ctxRequestID contextKey = "request_id"
	ctxPrincipal contextKey = "principal"
)

// RequestIDFromContext returns the id assigned by RequestID, if any.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(ctxRequestID).(string)
	return v
}

// PrincipalFromContext returns the signed-in user resolved for this request.
func PrincipalFromContext(ctx context.Context) *users.UserDTO {
	if ctx == nil {
		return nil
	}
	p, _ := ctx.Value(ctxPrincipal).(*users.UserDTO)
	return p
}

// WithPrincipal injects the signed-in user. A nil p leaves ctx anonymous.
func WithPrincipal(ctx context.Context, p *users.UserDTO) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxPrincipal, p)
}
