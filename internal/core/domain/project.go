package domain

import "time"

// Project is the root aggregate. Documents, chats and notes belong to
// exactly one project and cannot outlive it.
type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks required project fields.
func (p *Project) Validate() error {
	if p.Name == "" {
		return ErrInvalidInput
	}
	return nil
}

// Note is free text attached to a project, independently editable.
type Note struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
