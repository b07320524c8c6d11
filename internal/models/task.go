package models

// Task is a single checklist item inside a workflow.
// WorkflowID 0 means the task is unscoped (not attached to any workflow).
type Task struct {
	ID         int
	Text       string
	Checked    bool
	Order      int // position within the list; ties are broken by ID
	WorkflowID int
	CreatedAt  int64 // epoch seconds; 0 for rows that predate the column

	// Reminder bookkeeping. LastReminderSent is 0 until the notification
	// process confirms a delivery; it is never decreased afterwards.
	// ReminderWindowMinutes 0 means "use the global default window".
	LastReminderSent      int64 // epoch seconds
	ReminderWindowMinutes int
}
