package entity

import "time"

// Supplier representa un proveedor. Solo es referenciado por entradas.
type Supplier struct {
	ID           string
	Name         string
	ContactName  string
	ContactEmail string
	ContactPhone string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
