package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/task"
)

// TaskListAction prints the task table with per-stage statuses.
func TaskListAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	tasks, err := appCtx.Store.ListAll(ctx)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Keyword", "Language", "Research", "Headers", "RAG", "Brief", "Writing", "Publication")

	for _, t := range tasks {
		table.Append(
			fmt.Sprintf("%d", t.ID),
			t.Keyword,
			t.Language,
			t.StatusResearch.String(),
			t.StatusHeaders.String(),
			t.StatusRAG.String(),
			t.StatusBrief.String(),
			t.StatusWriting.String(),
			t.StatusPublication.String(),
		)
	}

	table.Render()
	fmt.Printf("\nTotal: %d tasks\n", len(tasks))
	return nil
}

// TaskShowAction prints every field of a single record.
func TaskShowAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	t, err := appCtx.Store.GetByID(ctx, cmd.Int("id"))
	if err != nil {
		return err
	}

	for _, spec := range task.Fields() {
		value := t.Get(spec.Field)
		if value == "" {
			value = "-"
		}
		fmt.Printf("%s:\n%s\n\n", spec.Label, value)
	}
	return nil
}

// TaskAddAction creates a new record from flags or interactive prompts.
func TaskAddAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	keyword := cmd.String("keyword")
	language := cmd.String("language")
	aioPrompt := cmd.String("aio")

	if cmd.Bool("interactive") {
		keyword, language, aioPrompt, err = promptTaskInput()
		if err != nil {
			return err
		}
	}

	if keyword == "" {
		return fmt.Errorf("keyword is required (use --keyword or --interactive)")
	}

	t, err := appCtx.Store.Insert(ctx, keyword, language, aioPrompt)
	if err != nil {
		return err
	}

	fmt.Printf("Created task %d for keyword %q\n", t.ID, t.Keyword)
	return nil
}

func promptTaskInput() (keyword, language, aioPrompt string, err error) {
	promptKeyword := promptui.Prompt{
		Label: "Keyword",
	}
	keyword, err = promptKeyword.Run()
	if err != nil {
		return "", "", "", err
	}

	promptLanguage := promptui.Prompt{
		Label:   "Language",
		Default: "pl",
	}
	language, err = promptLanguage.Run()
	if err != nil {
		return "", "", "", err
	}

	promptAIO := promptui.Prompt{
		Label:   "AIO prompt (optional)",
		Default: "",
	}
	aioPrompt, err = promptAIO.Run()
	if err != nil {
		return "", "", "", err
	}

	return keyword, language, aioPrompt, nil
}

// TaskDeleteAction removes the selected records.
func TaskDeleteAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	ids, err := parseIDs(cmd.String("ids"))
	if err != nil {
		return err
	}

	if err := appCtx.Store.Delete(ctx, ids); err != nil {
		return err
	}

	fmt.Printf("Deleted %d tasks\n", len(ids))
	return nil
}

// TaskExportAction writes all records to a CSV file, one column per field.
func TaskExportAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	tasks, err := appCtx.Store.ListAll(ctx)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	specs := task.Fields()
	header := make([]string, len(specs))
	for i, spec := range specs {
		header[i] = string(spec.Field)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range tasks {
		row := make([]string, len(specs))
		for i, spec := range specs {
			row[i] = t.Get(spec.Field)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	fmt.Printf("Exported %d tasks to %s\n", len(tasks), output)
	return nil
}

// TaskImportAction creates records from a CSV file. The file must have a
// header row with at least a keyword column; language and aio_prompt are
// optional.
func TaskImportAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	file, err := os.Open(cmd.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return fmt.Errorf("CSV has no data rows")
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[name] = i
	}
	keywordCol, ok := columns[string(task.FieldKeyword)]
	if !ok {
		return fmt.Errorf("CSV header is missing the keyword column")
	}

	cell := func(row []string, col int, ok bool) string {
		if !ok || col >= len(row) {
			return ""
		}
		return row[col]
	}

	languageCol, hasLanguage := columns[string(task.FieldLanguage)]
	aioCol, hasAIO := columns[string(task.FieldAIOPrompt)]

	imported := 0
	for _, row := range records[1:] {
		keyword := cell(row, keywordCol, true)
		if keyword == "" {
			continue
		}
		language := cell(row, languageCol, hasLanguage)
		if language == "" {
			language = task.DefaultLanguage
		}
		if _, err := appCtx.Store.Insert(ctx,
			keyword,
			language,
			cell(row, aioCol, hasAIO),
		); err != nil {
			return fmt.Errorf("failed to import keyword %q: %w", keyword, err)
		}
		imported++
	}

	fmt.Printf("Imported %d tasks\n", imported)
	return nil
}
