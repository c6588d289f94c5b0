package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller extracted from a verified token.
type Principal struct {
	UserID   int64
	Username string
	Role     string
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

func parseToken(r *http.Request, secret string) (Principal, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Principal{}, fmt.Errorf("missing token")
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Principal{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return Principal{}, fmt.Errorf("invalid token claims")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return Principal{
		UserID:   int64(userID),
		Username: username,
		Role:     role,
	}, nil
}

// jwtAuth gates a route group on a valid bearer token and places the
// principal in the request context.
func jwtAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := parseToken(r, secret)
			if err != nil {
				respond(w, http.StatusUnauthorized, err.Error(), nil)
				return
			}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
