package models

// File is a tracked filesystem entry attached to a workflow.
// Path is the natural key: re-adding an existing path updates the row in place.
type File struct {
	ID         int
	Path       string
	Name       string
	Size       int64
	MTime      int64 // file modification time, epoch seconds
	AddedAt    int64 // epoch seconds
	WorkflowID int
}
