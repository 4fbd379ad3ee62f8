package webserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/auraxlabs/aurastore/config"
	"github.com/auraxlabs/aurastore/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeCatalog struct {
	products map[int64]domain.Product
	offline  bool
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[int64]domain.Product{
		1: {ID: 1, Name: "Neon Chrono Watch", Price: decimal.RequireFromString("299.00"), Category: "Accessories", Image: "https://img/watch"},
		2: {ID: 2, Name: "Aero Kicks V2", Price: decimal.RequireFromString("189.00"), Category: "Footwear", Image: "https://img/kicks"},
		3: {ID: 3, Name: "Quantum Earbuds", Price: decimal.RequireFromString("159.00"), Category: "Audio", Image: "https://img/buds"},
	}}
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if f.offline {
		return nil, domain.ErrStoreUnavailable
	}
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if f.offline {
		return nil, domain.ErrStoreUnavailable
	}
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakeCatalog) CountProducts(ctx context.Context) (int64, error) {
	if f.offline {
		return 0, domain.ErrStoreUnavailable
	}
	return int64(len(f.products)), nil
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, p *domain.Product) error {
	if f.offline {
		return domain.ErrStoreUnavailable
	}
	f.products[p.ID] = *p
	return nil
}

type fakeAccounts struct {
	users   map[string]domain.SysUser
	offline bool
}

func newFakeAccounts(t *testing.T) *fakeAccounts {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeAccounts{users: map[string]domain.SysUser{
		"admin": {ID: 1, Username: "admin", Password: string(hash), Role: domain.RoleAdmin},
	}}
}

func (f *fakeAccounts) FindByUsername(ctx context.Context, username string) (*domain.SysUser, error) {
	if f.offline {
		return nil, domain.ErrStoreUnavailable
	}
	u, ok := f.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (f *fakeAccounts) CountAccounts(ctx context.Context) (int64, error) {
	if f.offline {
		return 0, domain.ErrStoreUnavailable
	}
	return int64(len(f.users)), nil
}

func (f *fakeAccounts) CreateAccount(ctx context.Context, u *domain.SysUser) error {
	if f.offline {
		return domain.ErrStoreUnavailable
	}
	f.users[u.Username] = *u
	return nil
}

func (f *fakeAccounts) TouchLastLogin(ctx context.Context, id int64) error {
	if f.offline {
		return domain.ErrStoreUnavailable
	}
	return nil
}

func testConfig() *config.AppConfig {
	cfg := new(config.AppConfig)
	*cfg = *config.DefaultAppConfig
	cfg.Web.Secret = "test-secret"
	return cfg
}

func newTestServer(t *testing.T) (*WebServer, *fakeCatalog, *fakeAccounts) {
	t.Helper()
	catalog := newFakeCatalog()
	accounts := newFakeAccounts(t)
	s := New(testConfig(), catalog, accounts, EventBus.New())
	return s, catalog, accounts
}

// testClient carries the session cookie across requests, like a browser.
type testClient struct {
	t       *testing.T
	s       *WebServer
	cookies map[string]*http.Cookie
}

func newTestClient(t *testing.T, s *WebServer) *testClient {
	return &testClient{t: t, s: s, cookies: make(map[string]*http.Cookie)}
}

func (tc *testClient) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	tc.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, ck := range tc.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	tc.s.root.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(tc.cookies, ck.Name)
		} else {
			tc.cookies[ck.Name] = ck
		}
	}
	return rec
}

func (tc *testClient) get(target string) *httptest.ResponseRecorder {
	return tc.do(http.MethodGet, target, nil)
}

func (tc *testClient) postAction(kv ...string) *httptest.ResponseRecorder {
	form := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		form.Set(kv[i], kv[i+1])
	}
	return tc.do(http.MethodPost, "/", form)
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
