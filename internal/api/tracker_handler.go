package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/api/shared"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/service"
)

// TrackerHandler serves projects and their tasks.
type TrackerHandler struct {
	projects service.ProjectService
	tasks    service.TaskService
	logger   *slog.Logger
}

// NewTrackerHandler creates a new TrackerHandler.
func NewTrackerHandler(
	projects service.ProjectService,
	tasks service.TaskService,
	logger *slog.Logger,
) *TrackerHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TrackerHandler")
	}
	return &TrackerHandler{
		projects: projects,
		tasks:    tasks,
		logger:   logger.With(slog.String("component", "tracker_handler")),
	}
}

// CreateProject handles POST /projects.
func (h *TrackerHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	// The auth middleware stores the caller's claims in the context
	actor, ok := actorFromRequest(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	// Parse and validate the request body
	var req ProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	project, err := h.projects.Create(r.Context(), actor, req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create project")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, project)
}

// GetProject handles GET /projects/{id}.
func (h *TrackerHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.projects.Get(r.Context(), actor, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get project")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// ListProjects handles GET /projects and returns the caller's projects.
func (h *TrackerHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	// Pagination comes from the limit and offset query parameters
	page, err := pageFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	projects, err := h.projects.ListOwn(r.Context(), actor, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list projects")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, projects)
}

// UpdateProject handles PUT /projects/{id}.
func (h *TrackerHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	// Parse and validate the request body
	var req ProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	project, err := h.projects.Update(r.Context(), actor, id, req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update project")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// DeleteProject handles DELETE /projects/{id}. Tasks go with it.
func (h *TrackerHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.projects.Delete(r.Context(), actor, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete project")
		return
	}
	shared.RespondNoContent(w)
}

// CreateTask handles POST /projects/{id}/tasks.
func (h *TrackerHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	actor, ok := actorFromRequest(w, r, log)
	if !ok {
		return
	}
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	// Parse and validate the request body
	var req TaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Create(r.Context(), actor, projectID, taskInput(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created",
		slog.String("project_id", projectID.String()),
		slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// ListTasks handles GET /projects/{id}/tasks with an optional status filter.
func (h *TrackerHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	// Pagination comes from the limit and offset query parameters
	page, err := pageFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	status := domain.TaskStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid status")
		return
	}

	tasks, err := h.tasks.ListByProject(r.Context(), actor, projectID, status, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTask handles GET /tasks/{id}.
func (h *TrackerHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), actor, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateTask handles PUT /tasks/{id}.
func (h *TrackerHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	// Parse and validate the request body
	var req TaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Update(r.Context(), actor, id, taskInput(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TrackerHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), actor, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}
	shared.RespondNoContent(w)
}

// taskInput converts a validated request; the uuid tag already vetted the assignee.
func taskInput(req TaskRequest) service.TaskInput {
	in := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		DueDate:     req.DueDate,
	}
	if req.AssigneeID != nil {
		if id, err := uuid.Parse(*req.AssigneeID); err == nil {
			in.AssigneeID = &id
		}
	}
	return in
}
