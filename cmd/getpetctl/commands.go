package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/choices"
	"pet-adoption/internal/domain/regions"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/domain/users"

	"github.com/spf13/cobra"
)

var configPath string

type app struct {
	regions  regions.Repository
	users    *users.Service
	shelters *shelters.Service
	choices  *choices.Service
}

type connectFunc func(ctx context.Context) (*app, func(), error)

type migrateFunc func(dsn string) (uint, error)

func newRootCmd(connect connectFunc, migrate migrateFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "getpetctl",
		Short:         "Tareas administrativas de GetPet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "ruta al config.yaml (por defecto CONFIG_PATH)")

	root.AddCommand(
		newMigrateCmd(migrate),
		newShelterCmd(connect),
		newStaffCmd(connect),
		newUsersCmd(connect),
		newConnectSuperusersCmd(connect),
		newExportChoicesCmd(connect),
	)
	return root
}

// withApp abre la conexión, ejecuta fn y la cierra.
func withApp(cmd *cobra.Command, connect connectFunc, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, closeFn, err := connect(ctx)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}
	return fn(ctx, a)
}

func newMigrateCmd(migrate migrateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.DSN == "" {
				return fmt.Errorf("postgres.dsn (POSTGRES_DSN) is required")
			}
			version, err := migrate(cfg.Postgres.DSN)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
			return nil
		},
	}
}

func newShelterCmd(connect connectFunc) *cobra.Command {
	cmd := &cobra.Command{Use: "shelter", Short: "Refugios"}

	var in shelters.CreateInput
	var regionCode string
	create := &cobra.Command{
		Use:   "create",
		Short: "Crea un refugio en una región",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, connect, func(ctx context.Context, a *app) error {
				rg, err := a.regions.GetByCode(ctx, regions.NormalizeCode(regionCode))
				if err != nil {
					return fmt.Errorf("region %q: %w", regionCode, err)
				}
				in.RegionID = rg.ID
				sh, err := a.shelters.Create(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "shelter %d created\n", sh.ID)
				return nil
			})
		},
	}
	create.Flags().StringVar(&in.Name, "name", "", "nombre")
	create.Flags().StringVar(&regionCode, "region", "", "código de región (p. ej. vilnius)")
	create.Flags().StringVar(&in.Email, "email", "", "email de contacto")
	create.Flags().StringVar(&in.Phone, "phone", "", "teléfono de contacto")
	create.Flags().BoolVar(&in.IsPublished, "published", false, "visible en la app")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("region")

	cmd.AddCommand(create)
	return cmd
}

func newStaffCmd(connect connectFunc) *cobra.Command {
	cmd := &cobra.Command{Use: "staff", Short: "Staff de refugios"}

	var shelterID int64
	var username string
	add := &cobra.Command{
		Use:   "add",
		Short: "Agrega un usuario al staff de un refugio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, connect, func(ctx context.Context, a *app) error {
				u, err := a.users.GetByUsername(ctx, username)
				if err != nil {
					return fmt.Errorf("user %q: %w", username, err)
				}
				added, err := a.shelters.AddStaff(ctx, shelterID, u.ID)
				if err != nil {
					return err
				}
				if !added {
					fmt.Fprintln(cmd.OutOrStdout(), "already staff")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "user %d added to shelter %d\n", u.ID, shelterID)
				return nil
			})
		},
	}
	add.Flags().Int64Var(&shelterID, "shelter", 0, "id del refugio")
	add.Flags().StringVar(&username, "user", "", "username (uid de Firebase)")
	_ = add.MarkFlagRequired("shelter")
	_ = add.MarkFlagRequired("user")

	cmd.AddCommand(add)
	return cmd
}

func newUsersCmd(connect connectFunc) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Usuarios"}

	var revoke bool
	promote := &cobra.Command{
		Use:   "promote <username>",
		Short: "Marca a un usuario como superusuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, connect, func(ctx context.Context, a *app) error {
				u, err := a.users.SetSuperuser(ctx, args[0], !revoke)
				if err != nil {
					return fmt.Errorf("user %q: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "user %d superuser=%t\n", u.ID, u.IsSuperuser)
				return nil
			})
		},
	}
	promote.Flags().BoolVar(&revoke, "revoke", false, "quitar el permiso")

	cmd.AddCommand(promote)
	return cmd
}

func newConnectSuperusersCmd(connect connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "connect-superusers",
		Short: "Agrega todos los superusuarios al staff de todos los refugios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, connect, func(ctx context.Context, a *app) error {
				supers, err := a.users.ListSuperusers(ctx)
				if err != nil {
					return err
				}
				ids := make([]int64, 0, len(supers))
				for _, u := range supers {
					ids = append(ids, u.ID)
				}
				n, err := a.shelters.ConnectSuperusers(ctx, ids)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d staff links created\n", n)
				return nil
			})
		},
	}
}

func newExportChoicesCmd(connect connectFunc) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-choices",
		Short: "Exporta a CSV las decisiones sobre perros",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, connect, func(ctx context.Context, a *app) error {
				var w io.Writer = cmd.OutOrStdout()
				if out != "" && out != "-" {
					f, err := os.Create(out)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}
				n, err := a.choices.ExportDogChoices(ctx, w)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%d rows exported\n", n)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "-", "archivo destino (- = stdout)")
	return cmd
}
