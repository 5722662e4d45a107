package pipeline

import "context"

// WorkflowKey names one of the remote workflows, one per pipeline stage. The
// workflow client resolves each key to its own endpoint credentials.
type WorkflowKey string

const (
	WorkflowResearch WorkflowKey = "research"
	WorkflowHeaders  WorkflowKey = "headers"
	WorkflowRAG      WorkflowKey = "rag"
	WorkflowBrief    WorkflowKey = "brief"
	WorkflowWriting  WorkflowKey = "writing"
)

// Outputs is the named output map of a workflow run.
type Outputs map[string]string

// Get returns the output under key, or "" when the workflow omitted it.
// Partial output is never an error at this layer.
func (o Outputs) Get(key string) string {
	return o[key]
}

// WorkflowClient invokes a named remote workflow with a structured input map.
// Implementations return a tagged error on transport failure, non-success
// status, or a malformed response body; they never panic on partial output.
type WorkflowClient interface {
	Invoke(ctx context.Context, key WorkflowKey, inputs map[string]string) (Outputs, error)
}

// DraftPost is the result of a successful draft creation at the publisher.
type DraftPost struct {
	ID   int64  `json:"id"`
	Link string `json:"link"`
}

// PublisherCredentials configure one publishing session. They are supplied per
// session (CLI flags, env, or request body) and are never persisted.
type PublisherCredentials struct {
	Endpoint    string
	Username    string
	AppPassword string
}

// Complete reports whether every credential part is present.
func (c PublisherCredentials) Complete() bool {
	return c.Endpoint != "" && c.Username != "" && c.AppPassword != ""
}

// Publisher creates a draft post at the content-management system.
type Publisher interface {
	CreateDraft(ctx context.Context, creds PublisherCredentials, title, content string) (*DraftPost, error)
}
