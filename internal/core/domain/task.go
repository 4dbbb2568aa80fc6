package domain

import (
	"time"

	"github.com/google/uuid"
)

// NewID creates a unique identifier for any entity.
func NewID() string {
	return uuid.NewString()
}

// TaskType identifies the type of background task
type TaskType string

const (
	// TaskTypeIndexDocument chunks, embeds and upserts one document
	TaskTypeIndexDocument TaskType = "index_document"
	// TaskTypeSummarizeDocument generates the exploration summary for one document
	TaskTypeSummarizeDocument TaskType = "summarize_document"
)

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task represents a background job to be processed by workers
type Task struct {
	ID   string   `json:"id"`
	Type TaskType `json:"type"`

	// Payload contains task-specific data.
	// For index_document and summarize_document: {"document_id": ..., "project_id": ...}
	Payload map[string]string `json:"payload"`

	Status      TaskStatus `json:"status"`
	Attempts    int        `json:"attempts"`
	MaxAttempts int        `json:"max_attempts"`
	Error       string     `json:"error,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewTask creates a new task with default values
func NewTask(taskType TaskType, payload map[string]string) *Task {
	now := time.Now()
	if payload == nil {
		payload = map[string]string{}
	}
	return &Task{
		ID:          NewID(),
		Type:        taskType,
		Payload:     payload,
		Status:      TaskStatusPending,
		MaxAttempts: 3,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CanRetry reports whether the task has retry attempts left
func (t *Task) CanRetry() bool {
	return t.Attempts < t.MaxAttempts
}

// MarkProcessing transitions the task to processing and counts the attempt
func (t *Task) MarkProcessing() {
	now := time.Now()
	t.Status = TaskStatusProcessing
	t.Attempts++
	t.StartedAt = &now
	t.UpdatedAt = now
}

// MarkCompleted transitions the task to completed
func (t *Task) MarkCompleted() {
	now := time.Now()
	t.Status = TaskStatusCompleted
	t.Error = ""
	t.CompletedAt = &now
	t.UpdatedAt = now
}

// MarkFailed transitions the task to failed with the given reason
func (t *Task) MarkFailed(reason string) {
	now := time.Now()
	t.Status = TaskStatusFailed
	t.Error = reason
	t.UpdatedAt = now
}

// Retry puts the task back to pending, recording the failure reason
func (t *Task) Retry(reason string) {
	t.Status = TaskStatusPending
	t.Error = reason
	t.UpdatedAt = time.Now()
}

// NewIndexTask enqueues indexing for a document.
func NewIndexTask(projectID, documentID string) *Task {
	return NewTask(TaskTypeIndexDocument, map[string]string{
		"project_id":  projectID,
		"document_id": documentID,
	})
}

// NewSummarizeTask enqueues summary generation for a document.
func NewSummarizeTask(projectID, documentID string) *Task {
	return NewTask(TaskTypeSummarizeDocument, map[string]string{
		"project_id":  projectID,
		"document_id": documentID,
	})
}
