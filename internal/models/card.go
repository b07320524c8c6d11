package models

// Card is a freeform note on the canvas, positioned by its bounding box.
type Card struct {
	ID        int
	Title     string
	X         int
	Y         int
	W         int
	H         int
	Content   string
	UpdatedAt int64 // epoch seconds
}
