package task

import (
	"fmt"
	"strconv"
)

// DefaultLanguage is the content language a record gets when none is given.
const DefaultLanguage = "pl"

// Field is a persisted column identifier of a task record. The column names
// form the durable contract with the pre-existing store schema and the table
// UI; they must never be renamed.
type Field string

const (
	FieldID                 Field = "id"
	FieldKeyword            Field = "keyword"
	FieldLanguage           Field = "language"
	FieldAIOPrompt          Field = "aio_prompt"
	FieldStatusResearch     Field = "status_research"
	FieldSERPPhrases        Field = "serp_phrases"
	FieldSenutoPhrases      Field = "senuto_phrases"
	FieldInfoGraph          Field = "info_graph"
	FieldCompetitorsHeaders Field = "competitors_headers"
	FieldKnowledgeGraph     Field = "knowledge_graph"
	FieldStatusHeaders      Field = "status_headers"
	FieldHeadersExpanded    Field = "headers_expanded"
	FieldHeadersH2          Field = "headers_h2"
	FieldHeadersQuestions   Field = "headers_questions"
	FieldHeadersFinal       Field = "headers_final"
	FieldStatusRAG          Field = "status_rag"
	FieldRAGContent         Field = "rag_content"
	FieldRAGGeneral         Field = "rag_general"
	FieldStatusBrief        Field = "status_brief"
	FieldBriefJSON          Field = "brief_json"
	FieldBriefHTML          Field = "brief_html"
	FieldInstructions       Field = "instructions"
	FieldStatusWriting      Field = "status_writing"
	FieldFinalArticle       Field = "final_article"
	FieldStatusPublication  Field = "status_publication"
	FieldPublicationLink    Field = "publication_link"
)

// FieldSpec binds an internal column name to its display label (the labels the
// original table UI shows to operators).
type FieldSpec struct {
	Field Field
	Label string
}

// Fields returns every persisted column in display order. The mapping is
// bidirectional and must stay bijective; Validate checks that at startup.
func Fields() []FieldSpec {
	return []FieldSpec{
		{FieldID, "ID"},
		{FieldKeyword, "Słowo kluczowe"},
		{FieldLanguage, "Język"},
		{FieldAIOPrompt, "AIO"},
		{FieldStatusResearch, "Status Research"},
		{FieldSERPPhrases, "Frazy z wyników"},
		{FieldSenutoPhrases, "Frazy Senuto"},
		{FieldInfoGraph, "Graf informacji"},
		{FieldCompetitorsHeaders, "Nagłówki konkurencji"},
		{FieldKnowledgeGraph, "Knowledge graph"},
		{FieldStatusHeaders, "Status Nagłówki"},
		{FieldHeadersExpanded, "Nagłówki rozbudowane"},
		{FieldHeadersH2, "Nagłówki H2"},
		{FieldHeadersQuestions, "Nagłówki pytania"},
		{FieldHeadersFinal, "Nagłówki (Finalne)"},
		{FieldStatusRAG, "Status RAG"},
		{FieldRAGContent, "RAG"},
		{FieldRAGGeneral, "RAG General"},
		{FieldStatusBrief, "Status Brief"},
		{FieldBriefJSON, "Brief"},
		{FieldBriefHTML, "Brief plik"},
		{FieldInstructions, "Dodatkowe instrukcje"},
		{FieldStatusWriting, "Status Generacja"},
		{FieldFinalArticle, "Generowanie contentu"},
		{FieldStatusPublication, "Status Publikacja"},
		{FieldPublicationLink, "Link publikacji"},
	}
}

// Validate checks the field table for duplicate columns or labels. Called once
// at startup so that a schema edit cannot silently break the mapping.
func Validate() error {
	seenFields := make(map[Field]bool)
	seenLabels := make(map[string]bool)
	for _, spec := range Fields() {
		if seenFields[spec.Field] {
			return fmt.Errorf("duplicate field name: %s", spec.Field)
		}
		if seenLabels[spec.Label] {
			return fmt.Errorf("duplicate field label: %s", spec.Label)
		}
		seenFields[spec.Field] = true
		seenLabels[spec.Label] = true
	}
	return nil
}

// KnownField reports whether f is a declared column.
func KnownField(f Field) bool {
	for _, spec := range Fields() {
		if spec.Field == f {
			return true
		}
	}
	return false
}

// Patch is a partial field update keyed by column. It is the unit the batch
// runner and the bulk-save path write back to the store.
type Patch map[Field]string

// Task is one keyword's content-production job with all intermediate
// artifacts. ID is assigned by the store and never mutated.
type Task struct {
	ID                 int64       `json:"id"`
	Keyword            string      `json:"keyword"`
	Language           string      `json:"language"`
	AIOPrompt          string      `json:"aio_prompt"`
	StatusResearch     StageStatus `json:"status_research"`
	SERPPhrases        string      `json:"serp_phrases"`
	SenutoPhrases      string      `json:"senuto_phrases"`
	InfoGraph          string      `json:"info_graph"`
	CompetitorsHeaders string      `json:"competitors_headers"`
	KnowledgeGraph     string      `json:"knowledge_graph"`
	StatusHeaders      StageStatus `json:"status_headers"`
	HeadersExpanded    string      `json:"headers_expanded"`
	HeadersH2          string      `json:"headers_h2"`
	HeadersQuestions   string      `json:"headers_questions"`
	HeadersFinal       string      `json:"headers_final"`
	StatusRAG          StageStatus `json:"status_rag"`
	RAGContent         string      `json:"rag_content"`
	RAGGeneral         string      `json:"rag_general"`
	StatusBrief        StageStatus `json:"status_brief"`
	BriefJSON          string      `json:"brief_json"`
	BriefHTML          string      `json:"brief_html"`
	Instructions       string      `json:"instructions"`
	StatusWriting      StageStatus `json:"status_writing"`
	FinalArticle       string      `json:"final_article"`
	StatusPublication  StageStatus `json:"status_publication"`
	PublicationLink    string      `json:"publication_link"`
}

// Get returns the persisted string form of a column.
func (t *Task) Get(f Field) string {
	switch f {
	case FieldID:
		return strconv.FormatInt(t.ID, 10)
	case FieldKeyword:
		return t.Keyword
	case FieldLanguage:
		return t.Language
	case FieldAIOPrompt:
		return t.AIOPrompt
	case FieldStatusResearch:
		return t.StatusResearch.String()
	case FieldSERPPhrases:
		return t.SERPPhrases
	case FieldSenutoPhrases:
		return t.SenutoPhrases
	case FieldInfoGraph:
		return t.InfoGraph
	case FieldCompetitorsHeaders:
		return t.CompetitorsHeaders
	case FieldKnowledgeGraph:
		return t.KnowledgeGraph
	case FieldStatusHeaders:
		return t.StatusHeaders.String()
	case FieldHeadersExpanded:
		return t.HeadersExpanded
	case FieldHeadersH2:
		return t.HeadersH2
	case FieldHeadersQuestions:
		return t.HeadersQuestions
	case FieldHeadersFinal:
		return t.HeadersFinal
	case FieldStatusRAG:
		return t.StatusRAG.String()
	case FieldRAGContent:
		return t.RAGContent
	case FieldRAGGeneral:
		return t.RAGGeneral
	case FieldStatusBrief:
		return t.StatusBrief.String()
	case FieldBriefJSON:
		return t.BriefJSON
	case FieldBriefHTML:
		return t.BriefHTML
	case FieldInstructions:
		return t.Instructions
	case FieldStatusWriting:
		return t.StatusWriting.String()
	case FieldFinalArticle:
		return t.FinalArticle
	case FieldStatusPublication:
		return t.StatusPublication.String()
	case FieldPublicationLink:
		return t.PublicationLink
	}
	return ""
}

// Apply writes a patch onto the record. The id column is immutable and is
// rejected, as is any undeclared column.
func (t *Task) Apply(p Patch) error {
	for f, v := range p {
		switch f {
		case FieldID:
			return fmt.Errorf("field %s is immutable", FieldID)
		case FieldKeyword:
			t.Keyword = v
		case FieldLanguage:
			t.Language = v
		case FieldAIOPrompt:
			t.AIOPrompt = v
		case FieldStatusResearch:
			t.StatusResearch = ParseStatus(v)
		case FieldSERPPhrases:
			t.SERPPhrases = v
		case FieldSenutoPhrases:
			t.SenutoPhrases = v
		case FieldInfoGraph:
			t.InfoGraph = v
		case FieldCompetitorsHeaders:
			t.CompetitorsHeaders = v
		case FieldKnowledgeGraph:
			t.KnowledgeGraph = v
		case FieldStatusHeaders:
			t.StatusHeaders = ParseStatus(v)
		case FieldHeadersExpanded:
			t.HeadersExpanded = v
		case FieldHeadersH2:
			t.HeadersH2 = v
		case FieldHeadersQuestions:
			t.HeadersQuestions = v
		case FieldHeadersFinal:
			t.HeadersFinal = v
		case FieldStatusRAG:
			t.StatusRAG = ParseStatus(v)
		case FieldRAGContent:
			t.RAGContent = v
		case FieldRAGGeneral:
			t.RAGGeneral = v
		case FieldStatusBrief:
			t.StatusBrief = ParseStatus(v)
		case FieldBriefJSON:
			t.BriefJSON = v
		case FieldBriefHTML:
			t.BriefHTML = v
		case FieldInstructions:
			t.Instructions = v
		case FieldStatusWriting:
			t.StatusWriting = ParseStatus(v)
		case FieldFinalArticle:
			t.FinalArticle = v
		case FieldStatusPublication:
			t.StatusPublication = ParseStatus(v)
		case FieldPublicationLink:
			t.PublicationLink = v
		default:
			return fmt.Errorf("unknown field: %s", f)
		}
	}
	return nil
}
