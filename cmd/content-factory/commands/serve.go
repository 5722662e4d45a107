package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/interface/httpapi"
)

// ServeAction starts the HTTP API for the table UI.
func ServeAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	httpCfg := appCtx.Config.HTTP
	if port := cmd.Int("port"); port != 0 {
		httpCfg.Port = int(port)
	}

	server := httpapi.NewServer(
		httpCfg,
		appCtx.Config.WordPress,
		appCtx.Store,
		appCtx.Pipeline,
		appCtx.Runner,
		appCtx.Logger,
	)

	return server.Run()
}
