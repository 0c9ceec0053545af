package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Compute description embeddings for every project",
	Long: `Embed sends each project's name and description to the embeddings API
and stores the vectors in PostgreSQL, where they back the similar-projects
endpoint.

Requires DATABASE_URL and OPENAI_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.requirePostgres("embed"); err != nil {
			return err
		}

		success, errs, err := a.search.EmbedCatalog(cmd.Context())
		if err != nil {
			return err
		}
		for _, e := range errs {
			logger.Warn(e)
		}
		logger.WithFields(logrus.Fields{
			"success": success,
			"failed":  len(errs),
		}).Info("Embedding complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(embedCmd)
}
