package httpapi

import "context"

type ctxKey int

const (
	subjectKey ctxKey = iota
	tokenKey
)

func withSubject(ctx context.Context, subject, token string) context.Context {
	ctx = context.WithValue(ctx, subjectKey, subject)
	return context.WithValue(ctx, tokenKey, token)
}

// subjectFrom returns the user id put in the context by the bearer middleware.
func subjectFrom(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok && s != ""
}

func tokenFrom(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)
	return t
}
