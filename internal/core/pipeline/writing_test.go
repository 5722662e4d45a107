package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/task"
)

// sectionWorkflow generates one section per call and can fail selected
// headings.
type sectionWorkflow struct {
	failOn map[string]error
	calls  []map[string]string
}

func (s *sectionWorkflow) Invoke(_ context.Context, _ WorkflowKey, inputs map[string]string) (Outputs, error) {
	s.calls = append(s.calls, inputs)
	if err, ok := s.failOn[inputs["naglowek"]]; ok {
		return nil, err
	}
	return Outputs{"result": "<p>sekcja: " + inputs["naglowek"] + "</p>"}, nil
}

func TestPipeline_Writing(t *testing.T) {
	workflow := &sectionWorkflow{}
	p := NewPipeline(workflow, &stubPublisher{})

	patch, err := p.Writing(context.Background(), &task.Task{
		Keyword:         "pompy ciepła",
		Language:        "polski",
		HeadersFinal:    "Pierwszy\nDrugi",
		HeadersExpanded: "rozbudowane",
		RAGContent:      "dokładna",
		RAGGeneral:      "ogólna",
		SERPPhrases:     "serp",
		SenutoPhrases:   "senuto",
		Instructions:    "pisz krótko",
	})

	require.NoError(t, err)
	require.Len(t, workflow.calls, 2)

	first := workflow.calls[0]
	assert.Equal(t, "Pierwszy", first["naglowek"])
	assert.Equal(t, "dokładna\nogólna", first["knowledge"])
	assert.Equal(t, "serp, senuto", first["keywords"])
	assert.Equal(t, "rozbudowane", first["headings"])
	assert.Equal(t, "pisz krótko", first["instruction"])
	assert.Equal(t, "", first["done"])

	// The second section's prompt carries the already generated HTML.
	second := workflow.calls[1]
	assert.Equal(t, "Drugi", second["naglowek"])
	assert.Contains(t, second["done"], "<h2>Pierwszy</h2>")
	assert.Contains(t, second["done"], "sekcja: Pierwszy")

	assert.Equal(t, task.Done().String(), patch[task.FieldStatusWriting])
	article := patch[task.FieldFinalArticle]
	assert.Equal(t,
		"<h2>Pierwszy</h2>\n<p>sekcja: Pierwszy</p>\n\n<h2>Drugi</h2>\n<p>sekcja: Drugi</p>\n\n",
		article,
	)
}

func TestPipeline_Writing_SectionFailureIsEmbeddedInline(t *testing.T) {
	workflow := &sectionWorkflow{
		failOn: map[string]error{"Drugi": errors.New("HTTP 500")},
	}
	p := NewPipeline(workflow, &stubPublisher{})

	patch, err := p.Writing(context.Background(), &task.Task{
		Keyword:      "k",
		HeadersFinal: "Pierwszy\nDrugi\nTrzeci",
	})

	// A partially failed article is still a completed stage.
	require.NoError(t, err)
	require.Len(t, workflow.calls, 3)
	assert.Equal(t, task.Done().String(), patch[task.FieldStatusWriting])

	article := patch[task.FieldFinalArticle]
	assert.Contains(t, article, "<h2>Drugi</h2>\n[BŁĄD GENEROWANIA: HTTP 500]\n\n")
	assert.Contains(t, article, "sekcja: Pierwszy")
	assert.Contains(t, article, "sekcja: Trzeci")
}

func TestPipeline_Writing_HTMLHeadingSource(t *testing.T) {
	workflow := &sectionWorkflow{}
	p := NewPipeline(workflow, &stubPublisher{})

	_, err := p.Writing(context.Background(), &task.Task{
		Keyword:      "k",
		HeadersFinal: "<h2>A</h2><h2>B</h2>",
	})

	require.NoError(t, err)
	require.Len(t, workflow.calls, 2)
	assert.Equal(t, "A", workflow.calls[0]["naglowek"])
	assert.Equal(t, "B", workflow.calls[1]["naglowek"])
}

func TestPipeline_Writing_PreconditionWithoutHeadings(t *testing.T) {
	workflow := &sectionWorkflow{}
	p := NewPipeline(workflow, &stubPublisher{})

	patch, err := p.Writing(context.Background(), &task.Task{Keyword: "k"})

	require.Error(t, err)
	assert.Nil(t, patch)
	assert.ErrorIs(t, err, ErrPrecondition)
	assert.Empty(t, workflow.calls)
}
