package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/task"
)

// Writing generates the article section by section from the final headings.
//
// Sections are generated strictly in heading order: every section's prompt
// carries the already generated HTML ("done"), so later sections depend on
// earlier ones and the loop cannot be parallelized. A failed section is
// embedded inline as visible error markup and the loop continues; a partially
// failed article is still a completed stage result.
func (p *Pipeline) Writing(ctx context.Context, t *task.Task) (task.Patch, error) {
	headings := ExtractHeadings(t.HeadersFinal)
	if len(headings) == 0 {
		return nil, &StageError{
			Stage: StageWriting,
			Err:   fmt.Errorf("%w: final headings column is empty", ErrPrecondition),
		}
	}

	knowledge := t.RAGContent + "\n" + t.RAGGeneral
	keywords := t.SERPPhrases + ", " + t.SenutoPhrases

	var article strings.Builder
	for _, heading := range headings {
		inputs := map[string]string{
			"naglowek":    heading,
			"language":    t.Language,
			"knowledge":   knowledge,
			"keywords":    keywords,
			"headings":    t.HeadersExpanded,
			"done":        article.String(),
			"keyword":     t.Keyword,
			"instruction": t.Instructions,
		}

		out, err := p.workflow.Invoke(ctx, WorkflowWriting, inputs)
		if err != nil {
			fmt.Fprintf(&article, "<h2>%s</h2>\n[BŁĄD GENEROWANIA: %v]\n\n", heading, err)
			continue
		}

		fmt.Fprintf(&article, "<h2>%s</h2>\n%s\n\n", heading, out.Get(outSectionResult))
	}

	return task.Patch{
		task.FieldStatusWriting: task.Done().String(),
		task.FieldFinalArticle:  article.String(),
	}, nil
}
