package httpx

import "context"

type ctxKey string

const (
	CtxKeySubject   ctxKey = "subject"
	CtxKeyPrincipal ctxKey = "principal"
)

// WithPrincipal stores the authenticated principal and its subject.
func WithPrincipal[T Principal](ctx context.Context, p T) context.Context {
	ctx = context.WithValue(ctx, CtxKeySubject, p.Subject())
	return context.WithValue(ctx, CtxKeyPrincipal, p)
}

// PrincipalFrom returns the principal placed by AuthnMiddleware.
func PrincipalFrom[T Principal](ctx context.Context) (T, bool) {
	p, ok := ctx.Value(CtxKeyPrincipal).(T)
	return p, ok
}

// SubjectFrom returns the authenticated subject, or "" for anonymous requests.
func SubjectFrom(ctx context.Context) string {
	s, _ := ctx.Value(CtxKeySubject).(string)
	return s
}
