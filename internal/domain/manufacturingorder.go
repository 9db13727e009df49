package domain

import "time"

// ManufacturingOrder is the production order a work order belongs to.
// Reflow carries it as context only.
type ManufacturingOrder struct {
	ID       string
	Number   string
	ItemID   string
	Quantity int
	DueDate  *time.Time
}
