package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/constants"
	commonerrors "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/errors"
	commonhttp "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/http"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
	userdomain "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/user/domain"
)

type Claims struct {
	UserID    string
	Email     string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (userdomain.User, bool)
}

type contextKey string

const userKey contextKey = "session_user"

func Middleware(resolver SessionResolver, log *logger.Logger) func(next http.Handler) http.Handler {
	errHandler := commonhttp.NewErrorHandler(log)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				log.WithFields(r.Context(), logger.Fields{
					"path":   r.URL.Path,
					"action": "session_missing",
				}).Debug("session auth failed: no cookie")
				errHandler.HandleError(w, r, commonerrors.ErrUnauthenticated)
				return
			}

			user, ok := resolver.ResolveSession(r.Context(), token)
			if !ok {
				log.WithFields(r.Context(), logger.Fields{
					"path":   r.URL.Path,
					"action": "session_rejected",
				}).Warn("session auth failed: token did not resolve")
				errHandler.HandleError(w, r, commonerrors.ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func Optional(resolver SessionResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := TokenFromRequest(r); token != "" {
				if user, ok := resolver.ResolveSession(r.Context(), token); ok {
					r = r.WithContext(WithUser(r.Context(), user))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(constants.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func WithUser(ctx context.Context, user userdomain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func FromContext(ctx context.Context) (userdomain.User, bool) {
	user, ok := ctx.Value(userKey).(userdomain.User)
	return user, ok
}

// ParseToken verifies an HS256 session token. now drives expiry checks and
// defaults to time.Now.
func ParseToken(tokenString string, secret []byte, now func() time.Time) (Claims, error) {
	if now == nil {
		now = time.Now
	}

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(now))
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return Claims{}, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims type")
	}

	sub, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["eml"].(string)
	jti, _ := mapClaims["jti"].(string)
	if sub == "" || jti == "" {
		return Claims{}, errors.New("missing sub or jti claims")
	}

	claims := Claims{
		UserID: sub,
		Email:  email,
		JTI:    jti,
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
