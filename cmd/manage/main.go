// Command manage runs administrative tasks against the recipe database:
// schema migrations and superuser creation.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sbilibin2017/gw-recipe-api/internal/logger"
	"github.com/sbilibin2017/gw-recipe-api/internal/migrations"
	"github.com/sbilibin2017/gw-recipe-api/internal/repositories"
	"github.com/sbilibin2017/gw-recipe-api/internal/services"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// dsnFromEnv builds the PostgreSQL URL from the same variables the API server reads.
func dsnFromEnv() string {
	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	return migrations.PostgresDSN(
		getEnv("POSTGRES_USER", "user"),
		getEnv("POSTGRES_PASSWORD", "password"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "database"),
	)
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "manage",
		Usage:  "administrative commands for gw-recipe-api",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.env",
				Usage:   "path to configuration file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				EnvVars: []string{"APP_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			_ = godotenv.Load(c.String("config"))
			return logger.Initialize(c.String("log-level"))
		},
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "apply or roll back schema migrations",
				Subcommands: []*cli.Command{
					{
						Name:  "up",
						Usage: "apply all pending migrations",
						Action: func(c *cli.Context) error {
							if err := migrations.Up(dsnFromEnv()); err != nil {
								return err
							}
							fmt.Fprintln(c.App.Writer, "migrations applied")
							return nil
						},
					},
					{
						Name:  "down",
						Usage: "roll back migrations",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
						},
						Action: func(c *cli.Context) error {
							if c.Int("steps") < 1 {
								return fmt.Errorf("--steps must be positive, got %d", c.Int("steps"))
							}
							if err := migrations.Down(dsnFromEnv(), c.Int("steps")); err != nil {
								return err
							}
							fmt.Fprintf(c.App.Writer, "rolled back %d migration(s)\n", c.Int("steps"))
							return nil
						},
					},
				},
			},
			{
				Name:  "createsuperuser",
				Usage: "create an active staff superuser",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"SUPERUSER_PASSWORD"}},
					&cli.StringFlag{Name: "name", Value: "Admin"},
				},
				Action: func(c *cli.Context) error {
					return createSuperuser(c.Context, c.App.Writer, dsnFromEnv(),
						c.String("email"), c.String("password"), c.String("name"))
				},
			},
		},
	}
}

func createSuperuser(ctx context.Context, out io.Writer, dsn, email, password, name string) error {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	authService := services.NewAuthService(
		repositories.NewUserReadRepository(db, nil),
		repositories.NewUserWriteRepository(db, nil),
		nil,
	)
	user, err := authService.CreateSuperuser(ctx, email, password, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "superuser %s created\n", user.Email)
	return nil
}
