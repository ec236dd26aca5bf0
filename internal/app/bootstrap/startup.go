// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/advisehub/internal/app/resources"
	userstore "github.com/dalemusser/advisehub/internal/app/store/users"
	"github.com/dalemusser/advisehub/internal/app/system/normalize"
	"github.com/dalemusser/advisehub/internal/app/system/status"
	"github.com/dalemusser/advisehub/internal/app/system/timeouts"
	"github.com/dalemusser/advisehub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It is the
// place to load shared resources (like templates), warm caches, or perform
// any app-wide setup that depends on config and backends.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts configured from environment", zap.Int("count", n))
	}

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, appCfg.AdminPassword, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureAdmin guarantees an admin account exists for the configured
// email. An existing account is promoted to admin; a missing one is
// created with the configured initial password.
func ensureAdmin(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	opCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), logger, "ensure admin")
	defer cancel()

	users := userstore.New(deps.MongoDatabase)
	email = normalize.Email(email)

	u, err := users.GetByEmail(opCtx, email)
	switch {
	case err == nil:
		if u.Role == models.RoleAdmin || u.Role == models.RoleSuperAdmin {
			return nil
		}
		if err := users.SetRole(opCtx, u.ID, models.RoleAdmin); err != nil {
			return fmt.Errorf("promote admin %s: %w", email, err)
		}
		logger.Info("promoted existing account to admin", zap.String("email", email))
		return nil

	case errors.Is(err, userstore.ErrNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		created, err := users.Create(opCtx, models.User{
			FullName: "Administrator",
			Email:    email,
			Role:     models.RoleAdmin,
			Status:   status.Active,
		})
		if err != nil {
			return fmt.Errorf("create admin %s: %w", email, err)
		}
		if err := users.SetPassword(opCtx, created.ID, string(hash)); err != nil {
			return fmt.Errorf("set admin password: %w", err)
		}
		logger.Info("created admin account", zap.String("email", email))
		return nil

	default:
		return fmt.Errorf("look up admin %s: %w", email, err)
	}
}
