package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTaskTitleLength bounds Task.Title in runes.
const MaxTaskTitleLength = 200

// TaskStatus is the progress state of a Task.
type TaskStatus string

// Task statuses.
const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task is a unit of work within a Project.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a Task in the todo state.
func NewTask(projectID uuid.UUID, title, description string, now time.Time) (*Task, error) {
	t := &Task{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Status:      TaskStatusTodo,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyID
	}
	if t.ProjectID == uuid.Nil {
		return ErrEmptyReference
	}
	if err := validText(t.Title, MaxTaskTitleLength); err != nil {
		return err
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	if t.AssigneeID != nil && *t.AssigneeID == uuid.Nil {
		return ErrEmptyReference
	}
	return nil
}

// Update replaces every mutable field of the task.
func (t *Task) Update(
	title, description string,
	status TaskStatus,
	assigneeID *uuid.UUID,
	dueDate *time.Time,
	now time.Time,
) error {
	t.Title = title
	t.Description = description
	t.Status = status
	t.AssigneeID = assigneeID
	if dueDate != nil {
		d := dueDate.UTC()
		dueDate = &d
	}
	t.DueDate = dueDate
	t.UpdatedAt = now.UTC()
	return t.Validate()
}
