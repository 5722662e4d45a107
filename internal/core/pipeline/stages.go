package pipeline

import (
	"context"
	"fmt"

	"github.com/samber/mo"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/task"
)

// Output keys of the remote workflows. The workflow definitions predate this
// implementation; the keys are part of the wire contract.
const (
	outSERPPhrases     = "frazy z serp"
	outSenutoPhrases   = "frazy_senuto"
	outInfoGraph       = "grafinformacji"
	outCompetitors     = "naglowki"
	outKnowledgeGraph  = "knowledge_graph"
	outHeadersExpanded = "naglowki_rozbudowane"
	outHeadersH2       = "naglowki_h2"
	outHeadersQuestion = "naglowki_pytania"
	outRAGExact        = "dokladne"
	outRAGGeneral      = "ogolne"
	outBriefJSON       = "brief"
	outBriefHTML       = "html"
	outSectionResult   = "result"
)

// Pipeline bundles the stage functions over one workflow client and one
// publisher client. Stage functions are pure with respect to the store.
type Pipeline struct {
	workflow  WorkflowClient
	publisher Publisher
}

// NewPipeline creates a Pipeline.
func NewPipeline(workflow WorkflowClient, publisher Publisher) *Pipeline {
	return &Pipeline{
		workflow:  workflow,
		publisher: publisher,
	}
}

// StageFunc resolves a workflow-backed stage to its function. Publication is
// excluded here because it additionally needs session credentials; use
// PublicationFunc.
func (p *Pipeline) StageFunc(stage Stage) (StageFunc, error) {
	switch stage {
	case StageResearch:
		return p.Research, nil
	case StageHeaders:
		return p.Headers, nil
	case StageRAG:
		return p.RAG, nil
	case StageBrief:
		return p.Brief, nil
	case StageWriting:
		return p.Writing, nil
	}
	return nil, fmt.Errorf("no stage function for stage %q", stage)
}

// PublicationFunc binds session publisher credentials into the publication
// stage. Credentials are held for the run only and never persisted.
func (p *Pipeline) PublicationFunc(creds mo.Option[PublisherCredentials]) StageFunc {
	return func(ctx context.Context, t *task.Task) (task.Patch, error) {
		return p.publish(ctx, t, creds)
	}
}

// Research fetches SERP/Senuto phrases, graphs and competitor headings for the
// keyword.
func (p *Pipeline) Research(ctx context.Context, t *task.Task) (task.Patch, error) {
	inputs := map[string]string{
		"keyword":  t.Keyword,
		"language": t.Language,
		"aio":      t.AIOPrompt,
	}

	out, err := p.workflow.Invoke(ctx, WorkflowResearch, inputs)
	if err != nil {
		return nil, &StageError{Stage: StageResearch, Err: err}
	}

	return task.Patch{
		task.FieldStatusResearch:     task.Done().String(),
		task.FieldSERPPhrases:        out.Get(outSERPPhrases),
		task.FieldSenutoPhrases:      out.Get(outSenutoPhrases),
		task.FieldInfoGraph:          out.Get(outInfoGraph),
		task.FieldCompetitorsHeaders: out.Get(outCompetitors),
		task.FieldKnowledgeGraph:     out.Get(outKnowledgeGraph),
	}, nil
}

// Headers derives heading candidates from the research outputs. A non-empty
// headers_final value is an operator decision and is never overwritten; when
// empty it is back-filled from the question headings, then the H2 headings.
func (p *Pipeline) Headers(ctx context.Context, t *task.Task) (task.Patch, error) {
	inputs := map[string]string{
		"keyword":  t.Keyword,
		"language": t.Language,
		"frazy":    t.SERPPhrases + "\n" + t.SenutoPhrases,
		"graf":     t.InfoGraph,
		"headings": t.CompetitorsHeaders,
	}

	out, err := p.workflow.Invoke(ctx, WorkflowHeaders, inputs)
	if err != nil {
		return nil, &StageError{Stage: StageHeaders, Err: err}
	}

	h2 := out.Get(outHeadersH2)
	questions := out.Get(outHeadersQuestion)

	final := t.HeadersFinal
	if final == "" {
		if questions != "" {
			final = questions
		} else {
			final = h2
		}
	}

	return task.Patch{
		task.FieldStatusHeaders:    task.Done().String(),
		task.FieldHeadersExpanded:  out.Get(outHeadersExpanded),
		task.FieldHeadersH2:        h2,
		task.FieldHeadersQuestions: questions,
		task.FieldHeadersFinal:     final,
	}, nil
}

// RAG builds the exact and general knowledge bases for the keyword.
func (p *Pipeline) RAG(ctx context.Context, t *task.Task) (task.Patch, error) {
	inputs := map[string]string{
		"keyword":  t.Keyword,
		"language": t.Language,
		"headings": t.CompetitorsHeaders,
	}

	out, err := p.workflow.Invoke(ctx, WorkflowRAG, inputs)
	if err != nil {
		return nil, &StageError{Stage: StageRAG, Err: err}
	}

	return task.Patch{
		task.FieldStatusRAG:  task.Done().String(),
		task.FieldRAGContent: out.Get(outRAGExact),
		task.FieldRAGGeneral: out.Get(outRAGGeneral),
	}, nil
}

// Brief produces the content brief. It fails fast when neither the H2 nor the
// final headings are available as a heading source.
func (p *Pipeline) Brief(ctx context.Context, t *task.Task) (task.Patch, error) {
	headingSource := t.HeadersH2
	if headingSource == "" {
		headingSource = t.HeadersFinal
	}
	if headingSource == "" {
		return nil, &StageError{
			Stage: StageBrief,
			Err:   fmt.Errorf("%w: no H2 or final headings to build the brief from", ErrPrecondition),
		}
	}

	inputs := map[string]string{
		"keyword":           t.Keyword,
		"keywords":          t.SERPPhrases + "\n" + t.SenutoPhrases,
		"headings":          headingSource,
		"knowledge_graph":   t.KnowledgeGraph,
		"information_graph": t.InfoGraph,
	}

	out, err := p.workflow.Invoke(ctx, WorkflowBrief, inputs)
	if err != nil {
		return nil, &StageError{Stage: StageBrief, Err: err}
	}

	return task.Patch{
		task.FieldStatusBrief: task.Done().String(),
		task.FieldBriefJSON:   out.Get(outBriefJSON),
		task.FieldBriefHTML:   out.Get(outBriefHTML),
	}, nil
}
