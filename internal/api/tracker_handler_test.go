package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/mocks"
	"github.com/phrazzld/crud-suite/internal/service"
	"github.com/phrazzld/crud-suite/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTrackerHandler_Projects(t *testing.T) {
	t.Parallel()

	t.Run("create project", func(t *testing.T) {
		actor := customerActor()
		project := &domain.Project{ID: uuid.New(), OwnerID: actor.UserID, Name: "Roadmap", CreatedAt: testNow}
		projects := &mocks.MockProjectService{}
		projects.On("Create", mock.Anything, *actor, "Roadmap", "Q3").Return(project, nil)

		w := httptest.NewRecorder()
		NewTrackerHandler(projects, &mocks.MockTaskService{}, testLogger()).CreateProject(w,
			newJSONRequest(t, http.MethodPost, "/api/projects",
				map[string]string{"name": "Roadmap", "description": "Q3"}, actor))

		require.Equal(t, http.StatusCreated, w.Code)
		projects.AssertExpectations(t)
	})

	t.Run("list own projects", func(t *testing.T) {
		actor := customerActor()
		projects := &mocks.MockProjectService{}
		projects.On("ListOwn", mock.Anything, *actor, store.Page{Limit: 10}).Return([]*domain.Project{}, nil)

		w := httptest.NewRecorder()
		NewTrackerHandler(projects, &mocks.MockTaskService{}, testLogger()).ListProjects(w,
			newJSONRequest(t, http.MethodGet, "/api/projects?limit=10", nil, actor))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("foreign project is forbidden", func(t *testing.T) {
		actor := customerActor()
		id := uuid.New()
		projects := &mocks.MockProjectService{}
		projects.On("Delete", mock.Anything, *actor, id).Return(service.ErrForbidden)

		w := httptest.NewRecorder()
		NewTrackerHandler(projects, &mocks.MockTaskService{}, testLogger()).DeleteProject(w,
			newJSONRequest(t, http.MethodDelete, "/api/projects/x", nil, actor, "id", id.String()))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("bad project id", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewTrackerHandler(&mocks.MockProjectService{}, &mocks.MockTaskService{}, testLogger()).GetProject(w,
			newJSONRequest(t, http.MethodGet, "/api/projects/x", nil, customerActor(), "id", "x"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTrackerHandler_Tasks(t *testing.T) {
	t.Parallel()

	t.Run("create task converts the request", func(t *testing.T) {
		actor := customerActor()
		projectID := uuid.New()
		assignee := uuid.New()
		due := testNow.Add(48 * time.Hour)
		tasks := &mocks.MockTaskService{}
		tasks.On("Create", mock.Anything, *actor, projectID, mock.MatchedBy(func(in service.TaskInput) bool {
			return in.Title == "Write docs" &&
				in.Status == domain.TaskStatusInProgress &&
				in.AssigneeID != nil && *in.AssigneeID == assignee &&
				in.DueDate != nil && in.DueDate.Equal(due)
		})).Return(&domain.Task{ID: uuid.New(), ProjectID: projectID, Title: "Write docs"}, nil)

		w := httptest.NewRecorder()
		NewTrackerHandler(&mocks.MockProjectService{}, tasks, testLogger()).CreateTask(w,
			newJSONRequest(t, http.MethodPost, "/api/projects/x/tasks", map[string]interface{}{
				"title":       "Write docs",
				"status":      "in_progress",
				"assignee_id": assignee.String(),
				"due_date":    due.Format(time.RFC3339),
			}, actor, "id", projectID.String()))

		require.Equal(t, http.StatusCreated, w.Code)
		tasks.AssertExpectations(t)
	})

	t.Run("create under missing project", func(t *testing.T) {
		actor := customerActor()
		projectID := uuid.New()
		tasks := &mocks.MockTaskService{}
		tasks.On("Create", mock.Anything, *actor, projectID, mock.Anything).Return(nil, store.ErrProjectNotFound)

		w := httptest.NewRecorder()
		NewTrackerHandler(&mocks.MockProjectService{}, tasks, testLogger()).CreateTask(w,
			newJSONRequest(t, http.MethodPost, "/api/projects/x/tasks",
				map[string]string{"title": "T"}, actor, "id", projectID.String()))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Project not found", decodeErrorResponse(t, w).Error)
	})

	t.Run("invalid status in body", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewTrackerHandler(&mocks.MockProjectService{}, &mocks.MockTaskService{}, testLogger()).CreateTask(w,
			newJSONRequest(t, http.MethodPost, "/api/projects/x/tasks",
				map[string]string{"title": "T", "status": "blocked"}, customerActor(), "id", uuid.NewString()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid status: invalid value", decodeErrorResponse(t, w).Error)
	})

	t.Run("list filtered by status", func(t *testing.T) {
		actor := customerActor()
		projectID := uuid.New()
		tasks := &mocks.MockTaskService{}
		tasks.On("ListByProject", mock.Anything, *actor, projectID, domain.TaskStatusDone,
			store.Page{Limit: store.DefaultPageLimit}).Return([]*domain.Task{}, nil)

		w := httptest.NewRecorder()
		NewTrackerHandler(&mocks.MockProjectService{}, tasks, testLogger()).ListTasks(w,
			newJSONRequest(t, http.MethodGet, "/api/projects/x/tasks?status=done", nil, actor,
				"id", projectID.String()))

		assert.Equal(t, http.StatusOK, w.Code)
		tasks.AssertExpectations(t)
	})

	t.Run("list rejects unknown status filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewTrackerHandler(&mocks.MockProjectService{}, &mocks.MockTaskService{}, testLogger()).ListTasks(w,
			newJSONRequest(t, http.MethodGet, "/api/projects/x/tasks?status=later", nil, customerActor(),
				"id", uuid.NewString()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete task", func(t *testing.T) {
		actor := adminActor()
		id := uuid.New()
		tasks := &mocks.MockTaskService{}
		tasks.On("Delete", mock.Anything, *actor, id).Return(nil)

		w := httptest.NewRecorder()
		NewTrackerHandler(&mocks.MockProjectService{}, tasks, testLogger()).DeleteTask(w,
			newJSONRequest(t, http.MethodDelete, "/api/tasks/x", nil, actor, "id", id.String()))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
