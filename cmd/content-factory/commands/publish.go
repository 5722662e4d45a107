package commands

import (
	"context"
	"fmt"

	"github.com/samber/mo"
	"github.com/urfave/cli/v3"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/pipeline"
)

// PublishAction runs the publication stage over the selected records.
// Credentials come from flags, falling back to the environment configuration;
// they live for this run only.
func PublishAction(ctx context.Context, cmd *cli.Command) error {
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

	wp := appCtx.Config.WordPress
	session := pipeline.PublisherCredentials{
		Endpoint:    cmd.String("wp-domain"),
		Username:    cmd.String("wp-user"),
		AppPassword: cmd.String("wp-password"),
	}
	fallback := pipeline.PublisherCredentials{
		Endpoint:    wp.Domain,
		Username:    wp.Username,
		AppPassword: wp.AppPassword,
	}

	creds := mo.None[pipeline.PublisherCredentials]()
	switch {
	case session.Complete():
		creds = mo.Some(session)
	case fallback.Complete():
		creds = mo.Some(fallback)
	}

	report := appCtx.Runner.Run(ctx, pipeline.StagePublication, appCtx.Pipeline.PublicationFunc(creds), tasks, nil)
	printReport(report)
	return nil
}
