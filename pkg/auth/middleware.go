package auth

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/taskhive/taskhive/pkg/apierr"
	"github.com/taskhive/taskhive/pkg/audit"
)

// IdentityResolver loads the identity a verified token refers to.
// Implementations return nil, nil when the identity no longer exists.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID uint64) (*Identity, error)
}

// RequireAuth returns the authorization gate middleware. It is the single
// entry point for every protected route: it extracts the bearer token,
// decodes it, resolves the identity, and attaches the Identity to the request
// context. Every failure aborts the request before the handler runs.
func RequireAuth(codec *Codec, resolver IdentityResolver, reporter *apierr.Reporter) func(http.Handler) http.Handler {
	if codec == nil || resolver == nil || reporter == nil {
		panic("auth: RequireAuth requires a codec, a resolver, and a reporter")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				reporter.Deny(w, r, apierr.ErrMissingCredential, nil)
				return
			}

			raw, ok := bearerToken(header)
			if !ok {
				reporter.Deny(w, r, apierr.ErrInvalidToken, nil)
				return
			}

			userID, err := codec.Decode(raw)
			if err != nil {
				reporter.Deny(w, r, apierr.AsError(err), nil)
				return
			}

			ident, err := resolver.ResolveIdentity(r.Context(), userID)
			if err != nil {
				reporter.Internal(w, r, err)
				return
			}
			if ident == nil {
				// The token was validly signed but references nobody: the
				// account was deleted after issuance. 401, not 404.
				reporter.Deny(w, r, apierr.ErrIdentityNotFound, &audit.Event{
					Actor:        strconv.FormatUint(userID, 10),
					ResourceType: "identity",
				})
				return
			}

			ctx := WithIdentity(r.Context(), *ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
