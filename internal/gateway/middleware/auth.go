// Package middleware holds the gateway's request authentication layer.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const callerKey = "caller"

// Caller is the authenticated identity extracted from a bearer token.
type Caller struct {
	ID       int64
	UserName string
	Email    string
	Roles    []string
}

// HasRole reports whether the caller carries the given role claim.
func (c Caller) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Auth validates the JWT and injects the caller identity into context.
// A token without a roles claim is still authenticated; role checks are
// the authorization policy's job, not this middleware's.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			caller, err := callerFromClaims(claims)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing caller identity")
			}

			c.Set(callerKey, caller)
			return next(c)
		}
	}
}

// CallerFrom extracts the caller injected by Auth. The second return is
// false when the middleware did not run for this route.
func CallerFrom(c echo.Context) (Caller, bool) {
	caller, ok := c.Get(callerKey).(Caller)
	return caller, ok
}

func callerFromClaims(claims jwt.MapClaims) (Caller, error) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Caller{}, jwt.ErrTokenInvalidSubject
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return Caller{}, jwt.ErrTokenInvalidSubject
	}

	caller := Caller{ID: id}
	caller.UserName, _ = claims["userName"].(string)
	caller.Email, _ = claims["email"].(string)

	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if name, ok := r.(string); ok {
				caller.Roles = append(caller.Roles, name)
			}
		}
	}
	return caller, nil
}
