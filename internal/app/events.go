package app

import (
	"context"
	"time"

	"github.com/auraxlabs/aurastore/internal/domain"
	"github.com/auraxlabs/aurastore/pkg/common"
	"go.uber.org/zap"
)

// Auth event topics published by the web layer.
const (
	EventAuthLogin  = "auth.login"
	EventAuthLogout = "auth.logout"
)

// subscribeAuthEvents records login/logout events into the audit table.
// Subscribers run synchronously on the publishing request.
func (a *Application) subscribeAuthEvents() {
	appendEntry := func(action string) func(username, ip string) {
		return func(username, ip string) {
			if err := a.authlog.AppendAuthLog(context.Background(), &domain.SysAuthLog{
				ID:       common.UUIDint64(),
				Username: username,
				Ip:       ip,
				Action:   action,
				OptTime:  time.Now(),
			}); err != nil {
				zap.L().Warn("failed to record auth event",
					zap.String("action", action),
					zap.String("username", username),
					zap.Error(err))
			}
		}
	}

	if err := a.bus.Subscribe(EventAuthLogin, appendEntry("login")); err != nil {
		zap.L().Error("failed to subscribe auth.login", zap.Error(err))
	}
	if err := a.bus.Subscribe(EventAuthLogout, appendEntry("logout")); err != nil {
		zap.L().Error("failed to subscribe auth.logout", zap.Error(err))
	}
}
