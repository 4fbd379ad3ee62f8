package webserver

import (
	"net/http"
	"strings"

	"github.com/auraxlabs/aurastore/internal/domain"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
)

type cartCountResponse struct {
	Success   bool `json:"success"`
	CartCount int  `json:"cart_count"`
}

type cartItemView struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type cartViewResponse struct {
	Items     map[int64]cartItemView `json:"items"`
	Total     float64                `json:"total"`
	CartCount int                    `json:"cart_count"`
}

// formInt64 parses a required integer form field. Malformed input is a
// client error, never silently coerced to zero.
func formInt64(c echo.Context, field string) (int64, error) {
	raw := strings.TrimSpace(c.FormValue(field))
	if raw == "" {
		return 0, errors.Errorf("missing field %q", field)
	}
	return cast.ToInt64E(raw)
}

// cartAdd increments the quantity for a catalog product by one. Unknown
// product ids are rejected with success:false.
func (s *WebServer) cartAdd(c echo.Context) error {
	id, err := formInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product id", nil)
	}

	sess := getSession(c)
	ct := getCart(sess)

	if _, err := s.catalog.GetProduct(c.Request().Context(), id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrStoreUnavailable) {
			zap.L().Error("product lookup failed", zap.Int64("id", id), zap.Error(err))
		}
		return ok(c, cartCountResponse{Success: false, CartCount: ct.Count()})
	}

	ct.Add(id)
	saveCart(c, sess, ct)
	return ok(c, cartCountResponse{Success: true, CartCount: ct.Count()})
}

// cartRemove deletes a cart entry. Removing an id that was never in the
// cart still answers success, so clients cannot desync.
func (s *WebServer) cartRemove(c echo.Context) error {
	id, err := formInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product id", nil)
	}

	sess := getSession(c)
	ct := getCart(sess)
	ct.Remove(id)
	saveCart(c, sess, ct)
	return ok(c, cartCountResponse{Success: true, CartCount: ct.Count()})
}

// cartUpdateQty sets the quantity of an existing entry; qty <= 0 removes
// it. An absent id with positive qty stays a no-op: only add creates
// entries.
func (s *WebServer) cartUpdateQty(c echo.Context) error {
	id, err := formInt64(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product id", nil)
	}
	qty64, err := formInt64(c, "qty")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid quantity", nil)
	}

	sess := getSession(c)
	ct := getCart(sess)
	ct.SetQuantity(id, int(qty64))
	saveCart(c, sess, ct)
	return ok(c, cartCountResponse{Success: true, CartCount: ct.Count()})
}

// cartGet resolves the cart against the catalog and returns the full
// item list with decimal-exact subtotals, rounded to 2 places for
// display.
func (s *WebServer) cartGet(c echo.Context) error {
	sess := getSession(c)
	ct := getCart(sess)

	products, _ := s.loadCatalog(c.Request().Context())
	catalog := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}

	snap := ct.Snapshot(catalog)
	items := make(map[int64]cartItemView, len(snap.Items))
	for id, item := range snap.Items {
		items[id] = cartItemView{
			ID:       item.Product.ID,
			Name:     item.Product.Name,
			Price:    item.Product.Price.Round(2).InexactFloat64(),
			Category: item.Product.Category,
			Image:    item.Product.Image,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal.Round(2).InexactFloat64(),
		}
	}

	return ok(c, cartViewResponse{
		Items:     items,
		Total:     snap.Total.Round(2).InexactFloat64(),
		CartCount: snap.Count,
	})
}
