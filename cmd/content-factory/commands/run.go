package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/pipeline"
)

// NewRunAction builds the action for one workflow-backed stage. All stage
// subcommands share the same selection flags and report rendering.
func NewRunAction(stage pipeline.Stage) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		appCtx, err := NewAppContext(ctx, cmd.String("env"))
		if err != nil {
			return err
		}
		defer appCtx.Close()

		tasks, err := appCtx.selectTasks(ctx, cmd.String("ids"), cmd.Bool("all"))
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks selected.")
			return nil
		}

		fn, err := appCtx.Pipeline.StageFunc(stage)
		if err != nil {
			return err
		}

		report := appCtx.Runner.Run(ctx, stage, fn, tasks, nil)
		printReport(report)
		return nil
	}
}
