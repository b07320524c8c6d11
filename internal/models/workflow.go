package models

// Workflow is a container for tasks, files, and opportunities.
// A workflow is owned by a user; UserID 0 means unscoped/global.
type Workflow struct {
	ID        int
	Name      string
	CreatedAt int64 // epoch seconds
	UpdatedAt int64 // epoch seconds
	UserID    int
}
