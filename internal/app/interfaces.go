package app

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/auraxlabs/aurastore/config"
	"github.com/auraxlabs/aurastore/internal/domain"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogRepository reads the product catalog. Implementations must
// return domain.ErrStoreUnavailable instead of crashing when the
// datastore is unreachable.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
}

// AccountRepository reads and seeds user accounts.
type AccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.SysUser, error)
	CountAccounts(ctx context.Context) (int64, error)
	CreateAccount(ctx context.Context, u *domain.SysUser) error
	TouchLastLogin(ctx context.Context, id int64) error
}

// AuthLogRepository appends authentication audit entries.
type AuthLogRepository interface {
	AppendAuthLog(ctx context.Context, entry *domain.SysAuthLog) error
}

// AppContext combines the provider interfaces plus lifecycle methods.
// Services should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider

	Bus() EventBus.Bus
	Catalog() CatalogRepository
	Accounts() AccountRepository
	AuthLog() AuthLogRepository

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
