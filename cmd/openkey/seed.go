package main

import (
	"fmt"

	"openkey/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and load the YAML catalog into PostgreSQL",
	Long: `Seed creates the projects and search_logs tables when missing and upserts
every project from the YAML catalog (CATALOG_PATH, or the embedded one).
Stored embeddings are kept.

Requires DATABASE_URL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.UsePostgres() {
			return fmt.Errorf("seed needs PostgreSQL: set DATABASE_URL")
		}

		repo, err := repository.NewPostgresRepository(cfg.PostgreSQL)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer repo.Close()

		if err := repo.EnsureSchema(cmd.Context()); err != nil {
			return err
		}

		catalog, err := repository.LoadStaticCatalog(cfg.Catalog.Path)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		projects, err := catalog.ListProjects(cmd.Context())
		if err != nil {
			return err
		}

		n, err := repo.UpsertProjects(cmd.Context(), projects)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"source":   catalogSource(),
			"projects": n,
		}).Info("Catalog seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
