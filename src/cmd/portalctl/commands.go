package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/swift-payments-portal/src/internal/app"
	"github.com/api-sage/swift-payments-portal/src/internal/config"
	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/api-sage/swift-payments-portal/src/internal/usecase/services"
	"github.com/spf13/cobra"
)

const commandTimeout = time.Minute

// passwordEnv lets operators keep the password out of shell history.
const passwordEnv = "PORTALCTL_EMPLOYEE_PASSWORD"

func openStore(ctx context.Context) (config.Config, *sql.DB, app.Repositories, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, app.Repositories{}, fmt.Errorf("load config: %w", err)
	}

	db, repos, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return config.Config{}, nil, app.Repositories{}, err
	}
	return cfg, db, repos, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Apply every embedded migration that has not been recorded yet.

The storage driver and connection come from the same environment variables
the server reads (STORAGE_DRIVER, DATABASE_DSN, SQLITE_PATH).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			cfg, db, _, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", cfg.StorageDriver)
			return nil
		},
	}
}

func employeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage staff accounts",
	}
	cmd.AddCommand(employeeCreateCmd())
	return cmd
}

func employeeCreateCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a staff account",
		Example: `  portalctl employee create --username reviewer
  PORTALCTL_EMPLOYEE_PASSWORD=... portalctl employee create -u reviewer`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(password) == "" {
				password = os.Getenv(passwordEnv)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			cfg, db, repos, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := services.NewEmployeeService(
				repos.Employees,
				services.NewPasswordHasher(cfg.BcryptCost, cfg.MaxConcurrentHashes),
				services.NewTokenService(cfg.JWTSecret, nil),
			)

			employee, err := svc.Provision(ctx, models.CreateEmployeeRequest{
				Username: username,
				Password: password,
			})
			if err != nil {
				var validationErr domain.ValidationError
				switch {
				case errors.As(err, &validationErr):
					return fmt.Errorf("%s (password may also be set through %s)", validationErr.Message, passwordEnv)
				case errors.Is(err, domain.ErrDuplicateRecord):
					return fmt.Errorf("employee %q already exists", strings.TrimSpace(username))
				}
				return fmt.Errorf("provision employee: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "employee %s created with id %s\n", employee.Username, employee.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "staff username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "staff password (or set "+passwordEnv+")")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
