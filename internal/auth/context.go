package auth

import (
	"context"
	"net/http"
)

type ctxKey string

const ctxKeySub ctxKey = "sub"

func WithSubject(r *http.Request, sub string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKeySub, sub))
}

func SubjectFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeySub); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
