package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/pipeline"
	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/task"
	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/infra/dify"
	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/infra/postgres"
	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/infra/wordpress"
	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/platform/config"
	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/platform/database"
	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/platform/logger"
)

// AppContext holds the shared dependencies of every command.
type AppContext struct {
	Config   *config.Config
	Database *database.DB
	Store    *postgres.TaskRepository
	Pipeline *pipeline.Pipeline
	Runner   *pipeline.Runner
	Logger   *slog.Logger
}

// NewAppContext loads configuration, connects to the database and wires the
// pipeline clients.
func NewAppContext(ctx context.Context, envFile string) (*AppContext, error) {
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid field table: %w", err)
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.New(logger.DefaultConfig())

	db, err := database.New(ctx, database.ConnectionParams{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	workflow := dify.NewClient(dify.Config{
		BaseURL: cfg.Dify.BaseURL,
		APIKeys: map[pipeline.WorkflowKey]string{
			pipeline.WorkflowResearch: cfg.Dify.APIKeyResearch,
			pipeline.WorkflowHeaders:  cfg.Dify.APIKeyHeaders,
			pipeline.WorkflowRAG:      cfg.Dify.APIKeyRAG,
			pipeline.WorkflowBrief:    cfg.Dify.APIKeyBrief,
			pipeline.WorkflowWriting:  cfg.Dify.APIKeyWrite,
		},
	})

	store := postgres.NewTaskRepository(db.Pool)

	return &AppContext{
		Config:   cfg,
		Database: db,
		Store:    store,
		Pipeline: pipeline.NewPipeline(workflow, wordpress.NewClient()),
		Runner:   pipeline.NewRunner(store, appLogger),
		Logger:   appLogger,
	}, nil
}

// Close releases the resources held by the AppContext.
func (ac *AppContext) Close() {
	if ac.Database != nil {
		ac.Database.Close()
	}
}

// parseIDs parses a comma-separated id list from a flag value.
func parseIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid task id %q", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no task ids given")
	}
	return ids, nil
}

// selectTasks resolves the record selection of a run command: either the
// explicit id list, or every record when all is set.
func (ac *AppContext) selectTasks(ctx context.Context, idsFlag string, all bool) ([]*task.Task, error) {
	if all {
		return ac.Store.ListAll(ctx)
	}

	ids, err := parseIDs(idsFlag)
	if err != nil {
		return nil, err
	}

	tasks := make([]*task.Task, 0, len(ids))
	for _, id := range ids {
		t, err := ac.Store.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load task %d: %w", id, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// printReport renders a batch report for the terminal.
func printReport(report pipeline.Report) {
	fmt.Printf("Run %s (%s): %d succeeded, %d failed, %d skipped\n",
		report.RunID, report.Stage, report.Succeeded, report.Failed, report.Skipped)
	for _, res := range report.Results {
		switch {
		case res.Skipped:
			fmt.Printf("  - %d %q: skipped\n", res.TaskID, res.Keyword)
		case res.Err != "":
			fmt.Printf("  - %d %q: failed: %s\n", res.TaskID, res.Keyword, res.Err)
		default:
			fmt.Printf("  - %d %q: ok\n", res.TaskID, res.Keyword)
		}
	}
}
