package webserver

import (
	"net/http"

	"github.com/auraxlabs/aurastore/internal/app"
	"github.com/auraxlabs/aurastore/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/labstack/echo/v4"
)

const (
	msgInvalidCredentials = "Invalid credentials!"
	msgStoreOffline       = "Database offline. Login unavailable."
)

// handleLogin validates credentials and establishes the session
// identity. Unknown username and wrong password produce the identical
// generic message; the caller must not be able to tell them apart.
func (s *WebServer) handleLogin(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := s.accounts.FindByUsername(c.Request().Context(), username)
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		return s.renderLogin(c, msgStoreOffline)
	case errors.Is(err, domain.ErrNotFound):
		return s.renderLogin(c, msgInvalidCredentials)
	case err != nil:
		zap.L().Error("account lookup failed", zap.Error(err))
		return s.renderLogin(c, msgStoreOffline)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return s.renderLogin(c, msgInvalidCredentials)
	}

	sess := getSession(c)
	sess.Values[sessionKeyUserID] = user.ID
	sess.Values[sessionKeyUsername] = user.Username
	sess.Values[sessionKeyRole] = user.Role
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Error("failed to save session", zap.Error(err))
	}

	if err := s.accounts.TouchLastLogin(c.Request().Context(), user.ID); err != nil {
		zap.L().Warn("failed to update last login", zap.Error(err))
	}
	s.bus.Publish(app.EventAuthLogin, user.Username, c.RealIP())
	zap.L().Info("login ok", zap.String("username", user.Username), zap.String("role", user.Role))

	target := "/?page=home"
	if user.Role == domain.RoleAdmin {
		target = "/?page=admin"
	}
	return c.Redirect(http.StatusFound, target)
}

// handleLogout destroys the entire session, cart included. Logging out
// clears the cart on purpose.
func (s *WebServer) handleLogout(c echo.Context) error {
	sess := getSession(c)
	if identity, ok := currentIdentity(sess); ok {
		s.bus.Publish(app.EventAuthLogout, identity.Username, c.RealIP())
	}

	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Error("failed to destroy session", zap.Error(err))
	}
	return c.Redirect(http.StatusFound, "/?page=home")
}
