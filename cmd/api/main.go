package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"example.com/bookstore/internal/app"
	"example.com/bookstore/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg := app.LoadConfig()

	if err := rootCmd(&cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd(cfg *app.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "bookstore",
		Short:        "Bookstore catalog and order API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*cfg)
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&cfg.Port, "port", cfg.Port, "HTTP listen port (APP_PORT)")
	f.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "sqlite or postgres (DB_DRIVER)")
	f.StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "database file or DSN (DB_DSN)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*cfg)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Insert the starter catalog if the books table is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed(cmd.Context(), *cfg)
		},
	})
	return root
}

func serve(cfg app.Config) error {
	srv, cleanup, err := app.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer cleanup()

	log.Printf("listening on :%s", cfg.Port)
	return srv.Run(":" + cfg.Port)
}

func seed(ctx context.Context, cfg app.Config) error {
	db, err := app.OpenDB(cfg, nil)
	if err != nil {
		return err
	}
	defer app.CloseDB(db)

	n, err := service.NewCatalogService(db).SeedCatalog(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Println("catalog already populated, nothing to do")
		return nil
	}
	log.Printf("Sample books added to database: %d", n)
	return nil
}
