package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/task"
)

// taskColumns is the full column list in declaration order. Scan targets in
// scanTask must stay aligned with it.
const taskColumns = `id, keyword, language, aio_prompt,
	status_research, serp_phrases, senuto_phrases, info_graph, competitors_headers, knowledge_graph,
	status_headers, headers_expanded, headers_h2, headers_questions, headers_final,
	status_rag, rag_content, rag_general,
	status_brief, brief_json, brief_html, instructions,
	status_writing, final_article,
	status_publication, publication_link`

// TaskRepository stores task records in the seo_content_tasks table.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func scanTask(row pgx.Row) (*task.Task, error) {
	var t task.Task
	var statuses [6]string

	err := row.Scan(
		&t.ID, &t.Keyword, &t.Language, &t.AIOPrompt,
		&statuses[0], &t.SERPPhrases, &t.SenutoPhrases, &t.InfoGraph, &t.CompetitorsHeaders, &t.KnowledgeGraph,
		&statuses[1], &t.HeadersExpanded, &t.HeadersH2, &t.HeadersQuestions, &t.HeadersFinal,
		&statuses[2], &t.RAGContent, &t.RAGGeneral,
		&statuses[3], &t.BriefJSON, &t.BriefHTML, &t.Instructions,
		&statuses[4], &t.FinalArticle,
		&statuses[5], &t.PublicationLink,
	)
	if err != nil {
		return nil, err
	}

	t.StatusResearch = task.ParseStatus(statuses[0])
	t.StatusHeaders = task.ParseStatus(statuses[1])
	t.StatusRAG = task.ParseStatus(statuses[2])
	t.StatusBrief = task.ParseStatus(statuses[3])
	t.StatusWriting = task.ParseStatus(statuses[4])
	t.StatusPublication = task.ParseStatus(statuses[5])
	return &t, nil
}

// ListAll returns every record, newest first.
func (r *TaskRepository) ListAll(ctx context.Context) ([]*task.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM seo_content_tasks ORDER BY id DESC`, taskColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// GetByID returns one record or task.ErrNotFound.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM seo_content_tasks WHERE id = $1`, taskColumns)

	t, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, task.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}

	return t, nil
}

// Update applies a partial field patch to one record. Columns are validated
// against the declared field table and the SET clause is built in declaration
// order, so the statement text is deterministic for a given patch.
func (r *TaskRepository) Update(ctx context.Context, id int64, patch task.Patch) error {
	if len(patch) == 0 {
		return nil
	}

	var setClauses []string
	args := []any{id}
	for _, spec := range task.Fields() {
		value, ok := patch[spec.Field]
		if !ok {
			continue
		}
		if spec.Field == task.FieldID {
			return fmt.Errorf("field %s is immutable", task.FieldID)
		}
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", spec.Field, len(args)))
	}
	if len(setClauses) != len(patch) {
		for f := range patch {
			if !task.KnownField(f) {
				return fmt.Errorf("unknown field: %s", f)
			}
		}
	}

	query := fmt.Sprintf(`UPDATE seo_content_tasks SET %s WHERE id = $1`, strings.Join(setClauses, ", "))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrNotFound
	}

	return nil
}

// Insert creates a record from its input fields. An empty language falls back
// to the default; every other column falls back to the schema default (empty
// string).
func (r *TaskRepository) Insert(ctx context.Context, keyword, language, aioPrompt string) (*task.Task, error) {
	if language == "" {
		language = task.DefaultLanguage
	}

	query := fmt.Sprintf(`INSERT INTO seo_content_tasks (keyword, language, aio_prompt)
		VALUES ($1, $2, $3)
		RETURNING %s`, taskColumns)

	t, err := scanTask(r.pool.QueryRow(ctx, query, keyword, language, aioPrompt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	return t, nil
}

// Delete removes the records with the given ids. Missing ids are ignored.
func (r *TaskRepository) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM seo_content_tasks WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}

	return nil
}

// Upsert writes a full record under its existing id. Used by the bulk-save
// path of the table UI, which sends whole rows back.
func (r *TaskRepository) Upsert(ctx context.Context, t *task.Task) error {
	if t.ID == 0 {
		return errors.New("task id is required for upsert")
	}

	specs := task.Fields()
	columns := make([]string, 0, len(specs))
	placeholders := make([]string, 0, len(specs))
	updates := make([]string, 0, len(specs))
	args := make([]any, 0, len(specs))
	for _, spec := range specs {
		args = append(args, t.Get(spec.Field))
		columns = append(columns, string(spec.Field))
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		if spec.Field != task.FieldID {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", spec.Field, spec.Field))
		}
	}

	query := fmt.Sprintf(`INSERT INTO seo_content_tasks (%s) VALUES (%s)
		ON CONFLICT (id) DO UPDATE SET %s`,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert task %d: %w", t.ID, err)
	}

	return nil
}

var _ task.Repository = (*TaskRepository)(nil)
