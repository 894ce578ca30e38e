package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/cli/config"
	"github.com/secmon-lab/themis/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg config.App

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate an assessment definition file",
		Flags:   appCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			schema, recommendations, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logger.Info("Configuration validation passed",
				"path", appCfg.Path(),
				"name", schema.Name,
				"mode", schema.Mode,
				"categories", schema.CategoryCount(),
				"questions", schema.TotalQuestions(),
			)

			for _, category := range schema.Categories {
				logger.Info("Category validated",
					"tenet", category.ID,
					"name", category.Name,
					"questions", len(category.Questions),
				)
			}

			if recommendations != nil {
				logger.Info("Recommendation tables validated",
					"guidance_entries", len(recommendations.Guidance),
					"tenet_tables", len(recommendations.Tenets),
					"priority_notes", len(recommendations.PriorityNotes),
				)
			} else {
				logger.Warn("No recommendation section found, result view will carry no guidance")
			}

			return nil
		},
	}
}
