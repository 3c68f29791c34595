package model

// Product is a catalog item. ID is assigned by the store on creation; zero
// means unassigned.
type Product struct {
	ID          int64   `json:"id" yaml:"id" db:"id"`
	Name        string  `json:"name" yaml:"name" db:"name"`
	Description string  `json:"description" yaml:"description" db:"description"`
	Price       float64 `json:"price" yaml:"price" db:"price"`
	Category    string  `json:"category" yaml:"category" db:"category"`
	Image       string  `json:"image" yaml:"image" db:"image"`
	Stock       int     `json:"stock" yaml:"stock" db:"stock"`
}
