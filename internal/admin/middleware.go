package admin

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"sulfurwatch/pkg/platform/httputil"
	"sulfurwatch/pkg/requestcontext"

	dErrors "sulfurwatch/pkg/domain-errors"
)

const adminTokenHeader = "X-Admin-Token"

// Authenticator resolves request credentials into a caller identity.
type Authenticator struct {
	identity  string
	tokenHash string
	tokens    *TokenValidator
	logger    *slog.Logger
}

func NewAuthenticator(identity, tokenHash string, tokens *TokenValidator, logger *slog.Logger) *Authenticator {
	return &Authenticator{identity: identity, tokenHash: tokenHash, tokens: tokens, logger: logger}
}

// Authenticate attaches the caller identity to the request context.
// Requests without credentials pass through anonymously; requests with bad
// credentials are rejected with 401.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		actor := ""

		if bearer, ok := bearerToken(r); ok {
			if a.tokens == nil {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "bearer tokens are not accepted"))
				return
			}
			subject, err := a.tokens.Validate(bearer)
			if err != nil {
				a.warn(r, "bearer token rejected", err)
				httputil.WriteError(w, err)
				return
			}
			actor = subject
		} else if static := r.Header.Get(adminTokenHeader); static != "" {
			if err := VerifyToken(static, a.tokenHash); err != nil {
				a.warn(r, "admin token mismatch", err)
				httputil.WriteError(w, err)
				return
			}
			actor = a.identity
		}

		if actor != "" {
			ctx = requestcontext.WithActorID(ctx, actor)
			ctx = requestcontext.WithActorClient(ctx, ClientLabel(r.UserAgent()))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) warn(r *http.Request, msg string, err error) {
	if a.logger == nil {
		return
	}
	a.logger.WarnContext(r.Context(), msg,
		"request_id", requestcontext.RequestID(r.Context()),
		"error", err,
	)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// ClientLabel turns a User-Agent into a short label such as "Chrome on Linux"
// recorded alongside administrative events.
func ClientLabel(userAgent string) string {
	if userAgent == "" {
		return "unknown client"
	}
	ua := useragent.New(userAgent)
	if ua.Bot() {
		name, _ := ua.Browser()
		if name == "" {
			return "bot"
		}
		return name
	}
	browser, _ := ua.Browser()
	platform := ua.OS()
	if browser == "" && platform == "" {
		return strings.TrimSpace(userAgent)
	}
	if platform == "" {
		return browser
	}
	if browser == "" {
		return platform
	}
	return strings.TrimSpace(fmt.Sprintf("%s on %s", browser, platform))
}
