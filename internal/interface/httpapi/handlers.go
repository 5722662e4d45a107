package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/mo"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/pipeline"
	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/task"
)

func (s *Server) listTasks(c *gin.Context) {
	tasks, err := s.store.ListAll(c.Request.Context())
	if err != nil {
		s.log.Error("failed to list tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tasks == nil {
		tasks = []*task.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

type createTaskRequest struct {
	Keyword   string `json:"keyword" binding:"required"`
	Language  string `json:"language"`
	AIOPrompt string `json:"aio_prompt"`
}

func (s *Server) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Language == "" {
		req.Language = task.DefaultLanguage
	}

	t, err := s.store.Insert(c.Request.Context(), req.Keyword, req.Language, req.AIOPrompt)
	if err != nil {
		s.log.Error("failed to create task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) updateTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := make(task.Patch, len(fields))
	for name, value := range fields {
		f := task.Field(name)
		if f == task.FieldID || !task.KnownField(f) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown or immutable field: " + name})
			return
		}
		patch[f] = value
	}

	if err := s.store.Update(c.Request.Context(), id, patch); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		s.log.Error("failed to update task", "taskID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": id})
}

// bulkSaveTasks writes whole rows back, the way the table UI saves edits.
// Rows without an id have never been persisted and are skipped; the rest of
// the batch still saves.
func (s *Server) bulkSaveTasks(c *gin.Context) {
	var tasks []*task.Task
	if err := c.ShouldBindJSON(&tasks); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, skipped := 0, 0
	for _, t := range tasks {
		if t.ID == 0 {
			skipped++
			continue
		}
		if err := s.store.Upsert(c.Request.Context(), t); err != nil {
			s.log.Error("failed to save task", "taskID", t.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "saved": saved})
			return
		}
		saved++
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved, "skipped": skipped})
}

type idsRequest struct {
	IDs []int64 `json:"ids" binding:"required"`
}

func (s *Server) deleteTasks(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.Delete(c.Request.Context(), req.IDs); err != nil {
		s.log.Error("failed to delete tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": len(req.IDs)})
}

// runStage executes one workflow-backed stage over the selected records and
// returns the batch report. The run is synchronous; the response arrives when
// the last record finishes.
func (s *Server) runStage(c *gin.Context) {
	stage, err := pipeline.ParseStage(c.Param("stage"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if stage == pipeline.StagePublication {
		c.JSON(http.StatusBadRequest, gin.H{"error": "use /api/publish for the publication stage"})
		return
	}

	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, ok := s.resolveTasks(c, req.IDs)
	if !ok {
		return
	}

	fn, err := s.pipeline.StageFunc(stage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := s.runner.Run(c.Request.Context(), stage, fn, tasks, nil)
	c.JSON(http.StatusOK, report)
}

type publishRequest struct {
	IDs         []int64 `json:"ids" binding:"required"`
	Endpoint    string  `json:"endpoint"`
	Username    string  `json:"username"`
	AppPassword string  `json:"app_password"`
}

// publishTasks runs the publication stage. Credentials from the request body
// take precedence over the environment defaults and live only for this call.
func (s *Server) publishTasks(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, ok := s.resolveTasks(c, req.IDs)
	if !ok {
		return
	}

	creds := mo.None[pipeline.PublisherCredentials]()
	if requested := (pipeline.PublisherCredentials{
		Endpoint:    req.Endpoint,
		Username:    req.Username,
		AppPassword: req.AppPassword,
	}); requested.Complete() {
		creds = mo.Some(requested)
	} else if fallback := (pipeline.PublisherCredentials{
		Endpoint:    s.publisher.Domain,
		Username:    s.publisher.Username,
		AppPassword: s.publisher.AppPassword,
	}); fallback.Complete() {
		creds = mo.Some(fallback)
	}

	report := s.runner.Run(c.Request.Context(), pipeline.StagePublication, s.pipeline.PublicationFunc(creds), tasks, nil)
	c.JSON(http.StatusOK, report)
}

// resolveTasks loads the selected records, preserving the requested order. A
// missing id fails the whole request before anything runs.
func (s *Server) resolveTasks(c *gin.Context, ids []int64) ([]*task.Task, bool) {
	tasks := make([]*task.Task, 0, len(ids))
	for _, id := range ids {
		t, err := s.store.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, task.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "task not found", "id": id})
				return nil, false
			}
			s.log.Error("failed to load task", "taskID", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return nil, false
		}
		tasks = append(tasks, t)
	}
	return tasks, true
}
