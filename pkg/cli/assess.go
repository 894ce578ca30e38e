package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/cli/config"
	"github.com/secmon-lab/themis/pkg/controller/tui"
	"github.com/secmon-lab/themis/pkg/repository/memory"
	"github.com/secmon-lab/themis/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdAssess() *cli.Command {
	var appCfg config.App

	return &cli.Command{
		Name:    "assess",
		Aliases: []string{"a"},
		Usage:   "Run the assessment interactively in the terminal",
		Flags:   appCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			schema, recommendations, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load assessment configuration")
			}

			repo := memory.New()
			uc := usecase.New(repo, schema, usecase.WithRecommendations(recommendations))

			result, err := tui.Run(ctx, uc.Assessment)
			if err != nil {
				return err
			}
			if result == nil {
				// Abandoned before the result view
				return nil
			}

			printPlan(result)
			return nil
		},
	}
}

// printPlan writes the full action plan to stdout after the interactive
// walkthrough exits, so the detail survives in the terminal scrollback
func printPlan(result *usecase.AssessmentResult) {
	plan := result.Plan

	heading := color.New(color.Bold, color.FgCyan)

	if len(plan.Actions) > 0 {
		heading.Println("\nActions:")
		for _, action := range plan.Actions {
			fmt.Printf("\n- [%s] %s: %s\n", action.Priority, action.Name, action.Focus)
			for _, control := range action.Controls {
				fmt.Printf("    %s\n", control.Name)
				for _, item := range control.Items {
					fmt.Printf("      - %s\n", item)
				}
			}
			if action.Standards != "" {
				fmt.Printf("    Standards: %s\n", action.Standards)
			}
		}
	}

	if len(plan.Guidance) > 0 {
		heading.Println("\nRecommendations:")
		for i, g := range plan.Guidance {
			fmt.Printf("\n%d. %s\n   %s\n", i+1, g.Title, g.Description)
			if g.Sources != "" {
				fmt.Printf("   Sources: %s\n", g.Sources)
			}
		}
	}
}
