// Package app wires configuration, storage, services and HTTP routing into a
// runnable portal.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/controller"
	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/router"
	"github.com/api-sage/swift-payments-portal/src/internal/adapter/repository/postgres"
	"github.com/api-sage/swift-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/swift-payments-portal/src/internal/adapter/repository/sqlite"
	"github.com/api-sage/swift-payments-portal/src/internal/config"
	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/logger"
	"github.com/api-sage/swift-payments-portal/src/internal/usecase/services"
)

type Repositories struct {
	Customers repo_interfaces.CustomerRepository
	Employees repo_interfaces.EmployeeRepository
	Payments  repo_interfaces.PaymentRepository
}

// OpenStore connects to the configured driver, applies migrations and returns
// the repositories backed by it.
func OpenStore(ctx context.Context, cfg config.Config) (*sql.DB, Repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, Repositories{}, err
		}
		if err := sqlite.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, Repositories{}, fmt.Errorf("run sqlite migrations: %w", err)
		}
		return db, Repositories{
			Customers: sqlite.NewCustomerRepository(db),
			Employees: sqlite.NewEmployeeRepository(db),
			Payments:  sqlite.NewPaymentRepository(db),
		}, nil

	case config.StorageDriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseDSN, postgres.PoolOptions{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
		})
		if err != nil {
			return nil, Repositories{}, err
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, Repositories{}, fmt.Errorf("run postgres migrations: %w", err)
		}
		return db, Repositories{
			Customers: postgres.NewCustomerRepository(db),
			Employees: postgres.NewEmployeeRepository(db),
			Payments:  postgres.NewPaymentRepository(db),
		}, nil
	}

	return nil, Repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}

// Portal holds the assembled HTTP handler and the services main needs
// directly.
type Portal struct {
	Handler   http.Handler
	Employees *services.EmployeeService
}

// New builds the portal. now may be nil.
func New(cfg config.Config, repos Repositories, now func() time.Time) *Portal {
	hasher := services.NewPasswordHasher(cfg.BcryptCost, cfg.MaxConcurrentHashes)
	tokens := services.NewTokenService(cfg.JWTSecret, now)

	customerAuth := services.NewCustomerAuthService(repos.Customers, hasher, tokens)
	employees := services.NewEmployeeService(repos.Employees, hasher, tokens)
	payments := services.NewPaymentService(repos.Payments)
	submitter := services.NewSwiftSubmissionService(repos.Payments)

	opts := controller.Options{
		SecureCookies:     cfg.CookieSecure,
		ExposeErrorDetail: cfg.IsDevelopment(),
	}

	var admin router.AdminRouteRegistrar
	var channelAuth func(http.Handler) http.Handler
	if cfg.AdminEnabled() {
		admin = controller.NewAdminController(employees, opts)
		channelAuth = middleware.BasicAuth(cfg.AdminChannelID, cfg.AdminChannelKey)
	}

	mux := router.New(
		controller.NewAuthController(customerAuth, opts),
		controller.NewEmployeeController(employees, payments, submitter, opts),
		controller.NewPaymentController(payments, opts),
		admin,
		router.Guards{
			AuthLimit: middleware.RateLimit(middleware.RateLimitOptions{
				Name:           "auth",
				Message:        middleware.AuthRateLimitMessage,
				Max:            cfg.RateLimitAuth,
				Window:         cfg.RateLimitWindow,
				SkipSuccessful: true,
			}),
			RequireCustomer: middleware.RequirePrincipal(tokens, domain.PrincipalCustomer),
			RequireEmployee: middleware.RequirePrincipal(tokens, domain.PrincipalEmployee),
			ChannelAuth:     channelAuth,
		},
	)

	handler := router.Handler(mux, router.Hardening{
		CORSOrigin:       cfg.CORSOrigin,
		RequestBodyLimit: cfg.RequestBodyLimit,
		GeneralLimit: middleware.RateLimit(middleware.RateLimitOptions{
			Name:    "general",
			Message: middleware.GeneralRateLimitMessage,
			Max:     cfg.RateLimitGeneral,
			Window:  cfg.RateLimitWindow,
		}),
	})

	logger.Info("portal assembled", logger.Fields{
		"storageDriver": cfg.StorageDriver,
		"adminEnabled":  cfg.AdminEnabled(),
		"environment":   cfg.AppEnv,
	})

	return &Portal{Handler: handler, Employees: employees}
}
