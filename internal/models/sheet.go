package models

// Sheet is a named CSV blob. Name is the natural key; saving under an
// existing name replaces the content. Parsing the CSV is the caller's job.
type Sheet struct {
	ID        int
	Name      string
	CSV       string
	UpdatedAt int64 // epoch seconds
}
