package app

import (
	"context"
	"testing"

	"github.com/auraxlabs/aurastore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memAccounts struct {
	users   []domain.SysUser
	offline bool
}

func (m *memAccounts) FindByUsername(ctx context.Context, username string) (*domain.SysUser, error) {
	if m.offline {
		return nil, domain.ErrStoreUnavailable
	}
	for i := range m.users {
		if m.users[i].Username == username {
			return &m.users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memAccounts) CountAccounts(ctx context.Context) (int64, error) {
	if m.offline {
		return 0, domain.ErrStoreUnavailable
	}
	return int64(len(m.users)), nil
}

func (m *memAccounts) CreateAccount(ctx context.Context, u *domain.SysUser) error {
	if m.offline {
		return domain.ErrStoreUnavailable
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *memAccounts) TouchLastLogin(ctx context.Context, id int64) error { return nil }

type memCatalog struct {
	products []domain.Product
	offline  bool
}

func (m *memCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if m.offline {
		return nil, domain.ErrStoreUnavailable
	}
	return m.products, nil
}

func (m *memCatalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if m.offline {
		return nil, domain.ErrStoreUnavailable
	}
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memCatalog) CountProducts(ctx context.Context) (int64, error) {
	if m.offline {
		return 0, domain.ErrStoreUnavailable
	}
	return int64(len(m.products)), nil
}

func (m *memCatalog) CreateProduct(ctx context.Context, p *domain.Product) error {
	if m.offline {
		return domain.ErrStoreUnavailable
	}
	m.products = append(m.products, *p)
	return nil
}

func TestCheckSuperSeedsDefaultAdmin(t *testing.T) {
	accounts := &memAccounts{}
	checkSuper(accounts)

	require.Len(t, accounts.users, 1)
	admin := accounts.users[0]
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin123")))
	assert.NotEqual(t, "admin123", admin.Password, "password must never be stored in plaintext")
}

func TestCheckSuperIsIdempotent(t *testing.T) {
	accounts := &memAccounts{}
	checkSuper(accounts)
	checkSuper(accounts)
	assert.Len(t, accounts.users, 1)
}

func TestCheckSuperSkipsPopulatedStore(t *testing.T) {
	accounts := &memAccounts{users: []domain.SysUser{{ID: 7, Username: "existing", Role: domain.RoleUser}}}
	checkSuper(accounts)
	assert.Len(t, accounts.users, 1, "a non-empty store must not be reseeded")
}

func TestCheckSuperToleratesOfflineStore(t *testing.T) {
	accounts := &memAccounts{offline: true}
	assert.NotPanics(t, func() { checkSuper(accounts) })
	assert.Empty(t, accounts.users)
}

func TestCheckProductsSeedsDemoCatalog(t *testing.T) {
	catalog := &memCatalog{}
	checkProducts(catalog)

	require.Len(t, catalog.products, 5)
	byName := make(map[string]domain.Product)
	for _, p := range catalog.products {
		byName[p.Name] = p
	}
	watch, ok := byName["Neon Chrono Watch"]
	require.True(t, ok)
	assert.True(t, watch.Price.Equal(decimal.RequireFromString("299.00")))
	assert.Equal(t, "Accessories", watch.Category)
	assert.NotEmpty(t, watch.Image)
}

func TestCheckProductsIsIdempotent(t *testing.T) {
	catalog := &memCatalog{}
	checkProducts(catalog)
	checkProducts(catalog)
	assert.Len(t, catalog.products, 5)
}

func TestCheckProductsToleratesOfflineStore(t *testing.T) {
	catalog := &memCatalog{offline: true}
	assert.NotPanics(t, func() { checkProducts(catalog) })
	assert.Empty(t, catalog.products)
}
