package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/fleetgrid/fleet-sdk/modules"
	"github.com/fleetgrid/fleet-sdk/modules/core/domain/aggregates/user"
	corepersistence "github.com/fleetgrid/fleet-sdk/modules/core/infrastructure/persistence"
	coreservices "github.com/fleetgrid/fleet-sdk/modules/core/services"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/entities/reference"
	fleetpersistence "github.com/fleetgrid/fleet-sdk/modules/fleet/infrastructure/persistence"
	"github.com/fleetgrid/fleet-sdk/pkg/application"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/configuration"
	"github.com/fleetgrid/fleet-sdk/pkg/eventbus"
)

func main() {
	root := &cobra.Command{
		Use:           "fleetctl",
		Short:         "Back-office administration commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(migrateCmd(), seedCmd(), tokenCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(ctx context.Context) (application.Application, *pgxpool.Pool, error) {
	conf := configuration.Use()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return nil, nil, err
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(conf.Logger()),
		Logger:   conf.Logger(),
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return app, pool, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply all pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, pool, err := setup(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()
			return app.Migrations().Apply(ctx)
		},
	}
}

func seedCmd() *cobra.Command {
	var email, fullName string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create an admin user and the default reference values",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, pool, err := setup(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()
			ctx = composables.WithPool(ctx, pool)

			users := corepersistence.NewUserRepository()
			admin, err := users.Create(ctx, user.New(email, fullName, user.RoleAdmin))
			if err != nil {
				return fmt.Errorf("seed admin user: %w", err)
			}
			fmt.Printf("admin user %s created (%s)\n", admin.Email(), admin.ID())

			references := fleetpersistence.NewReferenceRepository()
			defaults := map[reference.Kind]string{
				reference.KindBodyType:        "Saloon",
				reference.KindVehicleCategory: "Private",
				reference.KindVehicleType:     "Car",
				reference.KindStickerType:     "Annual",
			}
			for kind, name := range defaults {
				if _, err := references.Create(ctx, reference.New(kind, name, true, admin.ID())); err != nil {
					return fmt.Errorf("seed %s: %w", kind, err)
				}
			}
			fmt.Println("default reference values created")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "admin@localhost", "admin user email")
	cmd.Flags().StringVar(&fullName, "name", "Administrator", "admin user full name")
	return cmd
}

func tokenCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, pool, err := setup(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()
			ctx = composables.WithPool(ctx, pool)

			users := corepersistence.NewUserRepository()
			tokens := corepersistence.NewTokenRepository()
			u, err := users.GetByEmail(ctx, email)
			if err != nil {
				return err
			}

			auth := coreservices.NewAuthService(users, tokens)
			token, err := auth.IssueToken(ctx, u.ID())
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
