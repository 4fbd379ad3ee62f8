package app

import (
	"context"
	"time"

	"github.com/auraxlabs/aurastore/internal/domain"
	"github.com/auraxlabs/aurastore/pkg/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// checkSuper ensures the account store holds at least one administrator.
// Only an empty store is seeded; re-running performs no writes.
func checkSuper(accounts AccountRepository) {
	const superUsername = "admin"
	const defaultPassword = "admin123"

	ctx := context.Background()
	count, err := accounts.CountAccounts(ctx)
	if err != nil {
		zap.L().Error("failed to query accounts for seeding", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash default admin password", zap.Error(err))
		return
	}

	if err := accounts.CreateAccount(ctx, &domain.SysUser{
		ID:        common.UUIDint64(),
		Username:  superUsername,
		Password:  string(hashedPassword),
		Role:      domain.RoleAdmin,
		Status:    common.ENABLED,
		LastLogin: time.Now(),
	}); err != nil {
		zap.L().Error("failed to create default admin", zap.Error(err))
		return
	}
	zap.L().Info("initialized default admin account", zap.String("username", superUsername))
}

// checkProducts seeds the demo catalog when the product store is empty.
func checkProducts(catalog CatalogRepository) {
	defaultProducts := []domain.Product{
		{Name: "Neon Chrono Watch", Price: decimal.RequireFromString("299.00"), Category: "Accessories",
			Image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?q=80&w=800&auto=format&fit=crop"},
		{Name: "Aero Kicks V2", Price: decimal.RequireFromString("189.00"), Category: "Footwear",
			Image: "https://images.unsplash.com/photo-1552346154-21d32810baa3?q=80&w=800&auto=format&fit=crop"},
		{Name: "Cyberpunk Jacket", Price: decimal.RequireFromString("349.00"), Category: "Apparel",
			Image: "https://images.unsplash.com/photo-1551028719-0141bb623ce1?q=80&w=800&auto=format&fit=crop"},
		{Name: "Holo Glasses", Price: decimal.RequireFromString("129.00"), Category: "Eyewear",
			Image: "https://images.unsplash.com/photo-1511499767150-a48a237f0083?q=80&w=800&auto=format&fit=crop"},
		{Name: "Quantum Earbuds", Price: decimal.RequireFromString("159.00"), Category: "Audio",
			Image: "https://images.unsplash.com/photo-1590658268037-6f1115ea9081?q=80&w=800&auto=format&fit=crop"},
	}

	ctx := context.Background()
	count, err := catalog.CountProducts(ctx)
	if err != nil {
		zap.L().Error("failed to query catalog for seeding", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	now := time.Now()
	for _, p := range defaultProducts {
		p := p
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := catalog.CreateProduct(ctx, &p); err != nil {
			zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
		} else {
			zap.L().Info("initialized default product", zap.String("name", p.Name))
		}
	}
}
