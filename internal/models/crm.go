package models

// Client is a CRM contact.
type Client struct {
	ID        int
	Name      string
	Company   string
	Email     string
	Phone     string
	CreatedAt int64 // epoch seconds
	UpdatedAt int64 // epoch seconds
}

// Opportunity is a sales pipeline record referencing a Client.
// WorkflowID 0 means the opportunity is not attached to a workflow.
type Opportunity struct {
	ID         int
	ClientID   int
	Title      string
	Value      float64
	Status     string
	Stage      string
	OwnerID    int
	CreatedAt  int64 // epoch seconds
	UpdatedAt  int64 // epoch seconds
	WorkflowID int
}

// Interaction is an append-only log entry on an opportunity
// (a call, an email, a meeting note).
type Interaction struct {
	ID            int
	OpportunityID int
	Kind          string
	Note          string
	When          int64 // when the interaction happened, epoch seconds
	CreatedAt     int64 // epoch seconds
}
