package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jaroslawmuzyka/content-ai-wordpress/cmd/content-factory/commands"
	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/pipeline"
	"github.com/urfave/cli/v3"
)

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "path to the .env file",
		Value: ".env",
	}
}

func selectionFlags() []cli.Flag {
	return []cli.Flag{
		envFlag(),
		&cli.StringFlag{
			Name:  "ids",
			Usage: "comma-separated task ids",
		},
		&cli.BoolFlag{
			Name:  "all",
			Usage: "select every task",
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	runCommands := make([]*cli.Command, 0, len(pipeline.WorkflowStages()))
	for _, stage := range pipeline.WorkflowStages() {
		runCommands = append(runCommands, &cli.Command{
			Name:   string(stage),
			Usage:  "run the " + string(stage) + " stage for the selected tasks",
			Flags:  selectionFlags(),
			Action: commands.NewRunAction(stage),
		})
	}

	app := &cli.Command{
		Name:  "content-factory",
		Usage: "keyword-to-article content pipeline with WordPress publishing",
		Commands: []*cli.Command{
			{
				Name:  "task",
				Usage: "task record management",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "list all tasks",
						Flags:  []cli.Flag{envFlag()},
						Action: commands.TaskListAction,
					},
					{
						Name:  "show",
						Usage: "show every field of one task",
						Flags: []cli.Flag{
							envFlag(),
							&cli.IntFlag{
								Name:     "id",
								Usage:    "task id",
								Required: true,
							},
						},
						Action: commands.TaskShowAction,
					},
					{
						Name:  "add",
						Usage: "create a new task",
						Flags: []cli.Flag{
							envFlag(),
							&cli.StringFlag{
								Name:  "keyword",
								Usage: "target keyword",
							},
							&cli.StringFlag{
								Name:  "language",
								Usage: "content language",
								Value: "pl",
							},
							&cli.StringFlag{
								Name:  "aio",
								Usage: "extra research prompt",
							},
							&cli.BoolFlag{
								Name:  "interactive",
								Usage: "prompt for the fields interactively",
							},
						},
						Action: commands.TaskAddAction,
					},
					{
						Name:  "delete",
						Usage: "delete tasks",
						Flags: []cli.Flag{
							envFlag(),
							&cli.StringFlag{
								Name:     "ids",
								Usage:    "comma-separated task ids",
								Required: true,
							},
						},
						Action: commands.TaskDeleteAction,
					},
					{
						Name:  "export",
						Usage: "export all tasks to CSV",
						Flags: []cli.Flag{
							envFlag(),
							&cli.StringFlag{
								Name:  "output",
								Usage: "output file path",
								Value: "tasks.csv",
							},
						},
						Action: commands.TaskExportAction,
					},
					{
						Name:  "import",
						Usage: "import tasks from CSV",
						Flags: []cli.Flag{
							envFlag(),
							&cli.StringFlag{
								Name:     "file",
								Usage:    "CSV file path",
								Required: true,
							},
						},
						Action: commands.TaskImportAction,
					},
				},
			},
			{
				Name:     "run",
				Usage:    "run a pipeline stage over selected tasks",
				Commands: runCommands,
			},
			{
				Name:  "publish",
				Usage: "publish final articles as WordPress drafts",
				Flags: append(selectionFlags(),
					&cli.StringFlag{
						Name:  "wp-domain",
						Usage: "WordPress site domain (overrides the environment)",
					},
					&cli.StringFlag{
						Name:  "wp-user",
						Usage: "WordPress API user (overrides the environment)",
					},
					&cli.StringFlag{
						Name:  "wp-password",
						Usage: "WordPress application password (overrides the environment)",
					},
				),
				Action: commands.PublishAction,
			},
			{
				Name:  "serve",
				Usage: "start the HTTP API for the table UI",
				Flags: []cli.Flag{
					envFlag(),
					&cli.IntFlag{
						Name:  "port",
						Usage: "HTTP port (overrides the environment)",
					},
				},
				Action: commands.ServeAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
