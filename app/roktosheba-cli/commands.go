package main

import (
	"context"
	"fmt"
	"time"

	userService "roktoSheba/business/user"
	"roktoSheba/domain"
	mongoRepo "roktoSheba/internal/repository/mongo"
	psqlRepo "roktoSheba/internal/repository/postgres"
	"roktoSheba/pkg/config"
	"roktoSheba/pkg/database/mongo"
	"roktoSheba/pkg/database/postgres"
	"roktoSheba/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

const commandTimeout = 30 * time.Second

type userAdmin interface {
	UpdateRole(ctx context.Context, email, role string) (domain.UpdateResult, error)
	UpdateStatus(ctx context.Context, email, status string) (domain.UpdateResult, error)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.App.Environment)
	return cfg, nil
}

// withUsers runs fn against the user service backed by the configured store.
func withUsers(fn func(ctx context.Context, users userAdmin) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, db, err := mongo.InitMongo(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	defer func() {
		if err := mongo.CloseMongo(context.Background(), client); err != nil {
			logger.Error("Failed to close mongodb", "error", err)
		}
	}()

	return fn(ctx, userService.NewUserService(mongoRepo.NewUserRepository(db), validator.New()))
}

func migrateCmd() *cobra.Command {
	var skipPayments bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the document indexes and the payments table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client, db, err := mongo.InitMongo(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = mongo.CloseMongo(context.Background(), client) }()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			if err := mongoRepo.EnsureIndexes(ctx, db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "mongodb indexes ready")

			if skipPayments {
				return nil
			}

			pg, err := postgres.InitPostgres(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = postgres.ClosePostgres(pg) }()

			if err := psqlRepo.Migrate(pg); err != nil {
				return fmt.Errorf("migrate payments: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "payments table ready")
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipPayments, "skip-payments", false, "only create the mongodb indexes")

	return cmd
}

func setRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set-role [email] [Donor|Admin]",
		Short:   "Change the role of a registered user",
		Example: "  roktosheba-cli set-role admin@roktosheba.org Admin",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUsers(func(ctx context.Context, users userAdmin) error {
				res, err := users.UpdateRole(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "matched %d, modified %d\n", res.MatchedCount, res.ModifiedCount)
				return nil
			})
		},
	}
}

func setStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status [email] [Active|Blocked]",
		Short: "Block or unblock a registered user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUsers(func(ctx context.Context, users userAdmin) error {
				res, err := users.UpdateStatus(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				if res.MatchedCount == 0 {
					return fmt.Errorf("user %s: %w", args[0], domain.ErrNotFound)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "matched %d, modified %d\n", res.MatchedCount, res.ModifiedCount)
				return nil
			})
		},
	}
}
