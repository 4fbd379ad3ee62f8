package webserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/auraxlabs/aurastore/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
)

type productView struct {
	ID       int64
	Name     string
	Category string
	Image    string
	Price    string
}

type homePage struct {
	Products  []productView
	CartCount int
	LoggedIn  bool
	IsAdmin   bool
	Year      int
}

type loginPage struct {
	Error string
}

type adminPage struct {
	Username    string
	Role        string
	Products    []productView
	DBConnected bool
	DBName      string
	Year        int
}

// index is the single request entry point. POST requests carry an
// "action" form field (login or one of the cart JSON operations); GET
// requests render a page selected by the "page" query parameter, with
// "logout=1" destroying the session independent of page.
func (s *WebServer) index(c echo.Context) error {
	if c.Request().Method == http.MethodPost {
		switch action := c.FormValue("action"); action {
		case "login":
			return s.handleLogin(c)
		case "add":
			return s.cartAdd(c)
		case "remove":
			return s.cartRemove(c)
		case "update_qty":
			return s.cartUpdateQty(c)
		case "get_cart":
			return s.cartGet(c)
		default:
			return fail(c, http.StatusBadRequest, "INVALID_ACTION", "Unknown action", action)
		}
	}

	if c.QueryParam("logout") != "" {
		return s.handleLogout(c)
	}

	switch c.QueryParam("page") {
	case "login":
		return s.renderLogin(c, "")
	case "admin":
		return s.renderAdmin(c)
	default:
		return s.renderHome(c)
	}
}

// loadCatalog fetches all products, degrading to an empty catalog when
// the store is offline.
func (s *WebServer) loadCatalog(ctx context.Context) ([]domain.Product, bool) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			zap.L().Error("failed to load catalog", zap.Error(err))
		}
		return nil, false
	}
	return products, true
}

func toProductViews(products []domain.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Image:    p.Image,
			Price:    p.Price.StringFixed(2),
		})
	}
	return views
}

func (s *WebServer) renderHome(c echo.Context) error {
	sess := getSession(c)
	identity, loggedIn := currentIdentity(sess)
	products, _ := s.loadCatalog(c.Request().Context())

	return c.Render(http.StatusOK, "home.html", homePage{
		Products:  toProductViews(products),
		CartCount: getCart(sess).Count(),
		LoggedIn:  loggedIn,
		IsAdmin:   loggedIn && identity.Role == domain.RoleAdmin,
		Year:      time.Now().Year(),
	})
}

func (s *WebServer) renderLogin(c echo.Context, errMsg string) error {
	return c.Render(http.StatusOK, "login.html", loginPage{Error: errMsg})
}

// renderAdmin requires an admin session; anyone else is redirected to
// the login page.
func (s *WebServer) renderAdmin(c echo.Context) error {
	sess := getSession(c)
	identity, ok := currentIdentity(sess)
	if !ok || identity.Role != domain.RoleAdmin {
		return c.Redirect(http.StatusFound, "/?page=login")
	}

	products, connected := s.loadCatalog(c.Request().Context())
	return c.Render(http.StatusOK, "admin.html", adminPage{
		Username:    identity.Username,
		Role:        strings.ToUpper(identity.Role),
		Products:    toProductViews(products),
		DBConnected: connected,
		DBName:      s.cfg.Database.Name,
		Year:        time.Now().Year(),
	})
}
