// internal/httpserver/device.go
//
// Anonymous device identity.
// Every client is identified by a random device id carried in a signed JWT
// (cookie or "Authorization: Bearer"). Requests without a valid token get a new id,
// a cookie, and the token echoed in the X-Device-Token header for non-browser clients.
// Favorites are scoped to the device id; there are no accounts.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	deviceCookieName = "lexique_device"
	deviceHeader     = "X-Device-Token"
)

type ctxDeviceKey struct{}

// withDevice puts the caller's device id into the request context.
func (s *Server) withDevice(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		device := ""
		if tok := bearerOrCookie(r); tok != "" {
			device = s.parseDeviceToken(tok)
		}
		if device == "" {
			device = uuid.NewString()
			tok, exp, err := s.signDeviceToken(device)
			if err != nil {
				log.Error().Err(err).Msg("sign device token")
				http.Error(w, `{"error":"token_failed"}`, http.StatusInternalServerError)
				return
			}
			setDeviceCookie(w, tok, exp)
			w.Header().Set(deviceHeader, tok)
		}
		ctx := context.WithValue(r.Context(), ctxDeviceKey{}, device)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// deviceFrom returns the device id placed by withDevice.
func deviceFrom(ctx context.Context) string {
	d, _ := ctx.Value(ctxDeviceKey{}).(string)
	return d
}

// signDeviceToken issues an HS256 token whose subject is the device id.
func (s *Server) signDeviceToken(device string) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(time.Duration(s.opts.DeviceTokenDays) * 24 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   device,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := token.SignedString([]byte(s.opts.DeviceSecret))
	return ss, exp, err
}

// parseDeviceToken returns the device id of a valid token, or "".
func (s *Server) parseDeviceToken(tok string) string {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.DeviceSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.opts.Now))
	if err != nil || !t.Valid {
		log.Debug().Err(err).Msg("rejecting device token")
		return ""
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return ""
	}
	return claims.Subject
}

func setDeviceCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     deviceCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// bearerOrCookie extracts the token from "Authorization: Bearer" or the device cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(deviceCookieName); err == nil {
		return c.Value
	}
	// Browsers cannot set headers on websocket handshakes.
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	return ""
}
