package service_test

import (
	"context"
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

func existingProject(ownerID uuid.UUID) *domain.Project {
	return &domain.Project{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      "Roadmap",
		CreatedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
	}
}

func existingTask(projectID uuid.UUID) *domain.Task {
	return &domain.Task{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     "Write docs",
		Status:    domain.TaskStatusTodo,
		CreatedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
	}
}

func TestProjectService(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	owner := service.Actor{UserID: ownerID, Role: domain.RoleCustomer}
	stranger := service.Actor{UserID: uuid.New(), Role: domain.RoleEmployee}

	t.Run("create belongs to the actor", func(t *testing.T) {
		projects := new(mocks.TestifyMockProjectStore)
		projects.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Project) bool {
			return p.OwnerID == ownerID && p.Name == "Launch"
		})).Return(nil)

		svc := service.NewProjectService(projects, &mocks.MockDB{}, testClock(), testLogger())
		p, err := svc.Create(ctx, owner, "Launch", "")
		require.NoError(t, err)
		assert.Equal(t, ownerID, p.OwnerID)
	})

	t.Run("get is restricted to owner and admin", func(t *testing.T) {
		project := existingProject(ownerID)
		projects := new(mocks.TestifyMockProjectStore)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)

		svc := service.NewProjectService(projects, &mocks.MockDB{}, testClock(), testLogger())

		_, err := svc.Get(ctx, owner, project.ID)
		assert.NoError(t, err)
		_, err = svc.Get(ctx, service.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}, project.ID)
		assert.NoError(t, err)
		_, err = svc.Get(ctx, stranger, project.ID)
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("list own uses the actor id", func(t *testing.T) {
		projects := new(mocks.TestifyMockProjectStore)
		projects.On("ListByOwner", mock.Anything, ownerID, store.Page{}).Return([]*domain.Project{}, nil)

		svc := service.NewProjectService(projects, &mocks.MockDB{}, testClock(), testLogger())
		list, err := svc.ListOwn(ctx, owner, store.Page{})
		require.NoError(t, err)
		assert.Empty(t, list)
		projects.AssertExpectations(t)
	})

	t.Run("rename in a transaction", func(t *testing.T) {
		project := existingProject(ownerID)
		projects := new(mocks.TestifyMockProjectStore)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		projects.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Project) bool {
			return p.Name == "Renamed" && p.Description == "now with scope"
		})).Return(nil)

		db, sqlMock := mocks.NewTxDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		svc := service.NewProjectService(projects, db, testClock(), testLogger())
		p, err := svc.Update(ctx, owner, project.ID, "Renamed", "now with scope")
		require.NoError(t, err)
		assert.Equal(t, testNow, p.UpdatedAt)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		project := existingProject(ownerID)
		projects := new(mocks.TestifyMockProjectStore)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)

		db, sqlMock := mocks.NewTxDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		svc := service.NewProjectService(projects, db, testClock(), testLogger())
		err := svc.Delete(ctx, stranger, project.ID)
		assert.ErrorIs(t, err, service.ErrForbidden)
		projects.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestTaskService(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	owner := service.Actor{UserID: ownerID, Role: domain.RoleCustomer}
	stranger := service.Actor{UserID: uuid.New(), Role: domain.RoleCustomer}

	t.Run("create under a missing project", func(t *testing.T) {
		projects := new(mocks.TestifyMockProjectStore)
		tasks := new(mocks.TestifyMockTaskStore)
		missing := uuid.New()
		projects.On("GetByID", mock.Anything, missing).Return(nil, store.ErrProjectNotFound)

		svc := service.NewTaskService(tasks, projects, &mocks.MockDB{}, testClock(), testLogger())
		_, err := svc.Create(ctx, owner, missing, service.TaskInput{Title: "x"})
		assert.ErrorIs(t, err, store.ErrNotFound)
		tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("create with optional fields", func(t *testing.T) {
		project := existingProject(ownerID)
		assignee := uuid.New()
		due := testNow.Add(72 * time.Hour)

		projects := new(mocks.TestifyMockProjectStore)
		tasks := new(mocks.TestifyMockTaskStore)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		tasks.On("Create", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
			return task.ProjectID == project.ID &&
				task.Status == domain.TaskStatusInProgress &&
				task.AssigneeID != nil && *task.AssigneeID == assignee &&
				task.DueDate != nil && task.DueDate.Equal(due)
		})).Return(nil)

		svc := service.NewTaskService(tasks, projects, &mocks.MockDB{}, testClock(), testLogger())
		task, err := svc.Create(ctx, owner, project.ID, service.TaskInput{
			Title:      "Ship it",
			Status:     domain.TaskStatusInProgress,
			AssigneeID: &assignee,
			DueDate:    &due,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusInProgress, task.Status)
		tasks.AssertExpectations(t)
	})

	t.Run("create defaults to todo", func(t *testing.T) {
		project := existingProject(ownerID)
		projects := new(mocks.TestifyMockProjectStore)
		tasks := new(mocks.TestifyMockTaskStore)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		tasks.On("Create", mock.Anything, mock.Anything).Return(nil)

		svc := service.NewTaskService(tasks, projects, &mocks.MockDB{}, testClock(), testLogger())
		task, err := svc.Create(ctx, owner, project.ID, service.TaskInput{Title: "Plan"})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusTodo, task.Status)
	})

	t.Run("stranger cannot create", func(t *testing.T) {
		project := existingProject(ownerID)
		projects := new(mocks.TestifyMockProjectStore)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)

		svc := service.NewTaskService(new(mocks.TestifyMockTaskStore), projects, &mocks.MockDB{}, testClock(), testLogger())
		_, err := svc.Create(ctx, stranger, project.ID, service.TaskInput{Title: "Sneaky"})
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("list rejects unknown status", func(t *testing.T) {
		svc := service.NewTaskService(
			new(mocks.TestifyMockTaskStore), new(mocks.TestifyMockProjectStore),
			&mocks.MockDB{}, testClock(), testLogger(),
		)
		_, err := svc.ListByProject(ctx, owner, uuid.New(), domain.TaskStatus("blocked"), store.Page{})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("list filters by status", func(t *testing.T) {
		project := existingProject(ownerID)
		projects := new(mocks.TestifyMockProjectStore)
		tasks := new(mocks.TestifyMockTaskStore)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		tasks.On("ListByProject", mock.Anything, project.ID, domain.TaskStatusDone, store.Page{Limit: 5}).
			Return([]*domain.Task{existingTask(project.ID)}, nil)

		svc := service.NewTaskService(tasks, projects, &mocks.MockDB{}, testClock(), testLogger())
		list, err := svc.ListByProject(ctx, owner, project.ID, domain.TaskStatusDone, store.Page{Limit: 5})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("update checks the owning project", func(t *testing.T) {
		project := existingProject(ownerID)
		task := existingTask(project.ID)
		projects := new(mocks.TestifyMockProjectStore)
		tasks := new(mocks.TestifyMockTaskStore)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
		tasks.On("Update", mock.Anything, mock.MatchedBy(func(tk *domain.Task) bool {
			return tk.Status == domain.TaskStatusDone && tk.AssigneeID == nil
		})).Return(nil)

		db, sqlMock := mocks.NewTxDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		svc := service.NewTaskService(tasks, projects, db, testClock(), testLogger())
		updated, err := svc.Update(ctx, owner, task.ID, service.TaskInput{Title: "Write docs", Status: domain.TaskStatusDone})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusDone, updated.Status)
	})

	t.Run("stranger cannot delete a task", func(t *testing.T) {
		project := existingProject(ownerID)
		task := existingTask(project.ID)
		projects := new(mocks.TestifyMockProjectStore)
		tasks := new(mocks.TestifyMockTaskStore)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)

		db, sqlMock := mocks.NewTxDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		svc := service.NewTaskService(tasks, projects, db, testClock(), testLogger())
		assert.ErrorIs(t, svc.Delete(ctx, stranger, task.ID), service.ErrForbidden)
		tasks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("get hides tasks of other owners", func(t *testing.T) {
		project := existingProject(ownerID)
		task := existingTask(project.ID)
		projects := new(mocks.TestifyMockProjectStore)
		tasks := new(mocks.TestifyMockTaskStore)
		projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
		tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)

		svc := service.NewTaskService(tasks, projects, &mocks.MockDB{}, testClock(), testLogger())
		_, err := svc.Get(ctx, stranger, task.ID)
		assert.ErrorIs(t, err, service.ErrForbidden)

		got, err := svc.Get(ctx, owner, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})
}
