package entity

import "time"

// Company representa una organización/tenant del sistema (multi-tenant).
// Kioscos, productos y usuarios pertenecen siempre a una Company.
type Company struct {
	ID        string
	Name      string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
