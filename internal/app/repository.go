package app

import (
	"context"
	"time"

	"github.com/auraxlabs/aurastore/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormCatalogRepository implements CatalogRepository on a GORM handle.
// A nil handle means the store is offline; reads report
// domain.ErrStoreUnavailable so callers can degrade.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if r.db == nil {
		return nil, domain.ErrStoreUnavailable
	}
	var rows []domain.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return rows, nil
}

func (r *GormCatalogRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if r.db == nil {
		return nil, domain.ErrStoreUnavailable
	}
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrNotFound
	case err != nil:
		return nil, errors.Wrap(err, "get product")
	}
	return &p, nil
}

func (r *GormCatalogRepository) CountProducts(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, domain.ErrStoreUnavailable
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	return count, nil
}

func (r *GormCatalogRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if r.db == nil {
		return domain.ErrStoreUnavailable
	}
	return errors.Wrap(r.db.WithContext(ctx).Create(p).Error, "create product")
}

// GormAccountRepository implements AccountRepository on a GORM handle.
type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

func (r *GormAccountRepository) FindByUsername(ctx context.Context, username string) (*domain.SysUser, error) {
	if r.db == nil {
		return nil, domain.ErrStoreUnavailable
	}
	var user domain.SysUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrNotFound
	case err != nil:
		return nil, errors.Wrap(err, "find account")
	}
	return &user, nil
}

func (r *GormAccountRepository) CountAccounts(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, domain.ErrStoreUnavailable
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.SysUser{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count accounts")
	}
	return count, nil
}

func (r *GormAccountRepository) CreateAccount(ctx context.Context, u *domain.SysUser) error {
	if r.db == nil {
		return domain.ErrStoreUnavailable
	}
	return errors.Wrap(r.db.WithContext(ctx).Create(u).Error, "create account")
}

func (r *GormAccountRepository) TouchLastLogin(ctx context.Context, id int64) error {
	if r.db == nil {
		return domain.ErrStoreUnavailable
	}
	return errors.Wrap(r.db.WithContext(ctx).Model(&domain.SysUser{}).
		Where("id = ?", id).
		Update("last_login", time.Now()).Error, "touch last login")
}

// GormAuthLogRepository implements AuthLogRepository on a GORM handle.
type GormAuthLogRepository struct {
	db *gorm.DB
}

func NewGormAuthLogRepository(db *gorm.DB) *GormAuthLogRepository {
	return &GormAuthLogRepository{db: db}
}

func (r *GormAuthLogRepository) AppendAuthLog(ctx context.Context, entry *domain.SysAuthLog) error {
	if r.db == nil {
		return domain.ErrStoreUnavailable
	}
	return errors.Wrap(r.db.WithContext(ctx).Create(entry).Error, "append auth log")
}
