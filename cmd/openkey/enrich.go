package main

import (
	"errors"
	"fmt"
	"os"

	"openkey/internal/enrichment"
	"openkey/internal/model"
	"openkey/internal/output"
	"openkey/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Attach nearby places to catalog projects via Google Places",
	Long: `Enrich looks up parks, schools, transit, hospitals, malls, restaurants,
gyms, golf courses and beaches around each project and writes the catalog
back as YAML. Projects that already have surroundings are skipped unless
--force is given. Progress is saved after every project.

Requires GOOGLE_MAPS_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		force, _ := cmd.Flags().GetBool("force")
		if out == "" {
			out = cfg.Catalog.Path
		}
		if out == "" {
			return errors.New("no output file: pass --out or set CATALOG_PATH")
		}

		places := enrichment.NewPlacesClient(&cfg.Places, logger)
		if !places.IsEnabled() {
			return enrichment.ErrPlacesDisabled
		}

		catalog, err := repository.LoadStaticCatalog(cfg.Catalog.Path)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		projects, err := catalog.ListProjects(cmd.Context())
		if err != nil {
			return err
		}

		logger.WithFields(logrus.Fields{
			"source":   catalogSource(),
			"out":      out,
			"projects": len(projects),
			"force":    force,
		}).Info("Starting enrichment")

		save := func(projects []model.Project) error {
			return repository.SaveYAML(out, projects)
		}
		enriched, summary, err := enrichment.NewEnricher(places, logger).EnrichCatalog(cmd.Context(), projects, enrichment.Options{
			Force: force,
			Save:  save,
		})
		if saveErr := save(enriched); saveErr != nil && err == nil {
			err = fmt.Errorf("save catalog: %w", saveErr)
		}

		if summary != nil {
			if renderErr := output.Summary(os.Stdout, summary); renderErr != nil {
				logger.WithError(renderErr).Warn("Failed to render summary")
			}
		}
		return err
	},
}

func init() {
	enrichCmd.Flags().String("out", "", "catalog file to write (default CATALOG_PATH)")
	enrichCmd.Flags().Bool("force", false, "re-fetch projects that already have nearby places")

	rootCmd.AddCommand(enrichCmd)
}
