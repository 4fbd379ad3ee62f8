package webserver

import (
	"context"
	"embed"
	"encoding/gob"
	"fmt"
	"html/template"
	"io"

	"github.com/asaskevich/EventBus"
	"github.com/auraxlabs/aurastore/config"
	"github.com/auraxlabs/aurastore/internal/app"
	"github.com/auraxlabs/aurastore/internal/cart"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

const sessionName = "aurax_session"

// Session value keys. The cart lives in the session alongside the
// identity; destroying the session discards both.
const (
	sessionKeyUserID   = "user_id"
	sessionKeyUsername = "username"
	sessionKeyRole     = "role"
	sessionKeyCart     = "cart"
)

func init() {
	gob.Register(cart.Cart{})
}

// WebServer serves the storefront: HTML pages and the cart JSON actions,
// all from the single "/" entry point.
type WebServer struct {
	root     *echo.Echo
	cfg      *config.AppConfig
	catalog  app.CatalogRepository
	accounts app.AccountRepository
	bus      EventBus.Bus
}

func New(cfg *config.AppConfig, catalog app.CatalogRepository, accounts app.AccountRepository, bus EventBus.Bus) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	secret := cfg.Web.Secret
	if secret == "" {
		secret = random.String(32)
		zap.L().Warn("web.secret is empty, generated a volatile session secret; sessions will not survive restarts")
	}
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	e.Renderer = newTemplateRenderer()
	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))

	s := &WebServer{
		root:     e,
		cfg:      cfg,
		catalog:  catalog,
		accounts: accounts,
		bus:      bus,
	}
	s.initRouter()
	return s
}

func (s *WebServer) initRouter() {
	s.root.GET("/", s.index)
	s.root.POST("/", s.index)
}

// Start runs the HTTP listener until Shutdown or failure.
func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.S().Infof("starting storefront on http://%s", addr)
	return s.root.Start(addr)
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

type templateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() *templateRenderer {
	t := template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
	return &templateRenderer{templates: t}
}

func (t *templateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func getSession(c echo.Context) *sessions.Session {
	sess, _ := session.Get(sessionName, c)
	return sess
}

// getCart returns the session cart, lazily creating an empty one.
func getCart(sess *sessions.Session) cart.Cart {
	if v, ok := sess.Values[sessionKeyCart].(cart.Cart); ok {
		return v
	}
	return cart.New()
}

func saveCart(c echo.Context, sess *sessions.Session, ct cart.Cart) {
	sess.Values[sessionKeyCart] = ct
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Error("failed to save session", zap.Error(err))
	}
}

// Identity is the authenticated user bound to the session.
type Identity struct {
	UserID   int64
	Username string
	Role     string
}

func currentIdentity(sess *sessions.Session) (Identity, bool) {
	id, ok := sess.Values[sessionKeyUserID].(int64)
	if !ok {
		return Identity{}, false
	}
	username, _ := sess.Values[sessionKeyUsername].(string)
	role, _ := sess.Values[sessionKeyRole].(string)
	return Identity{UserID: id, Username: username, Role: role}, true
}
