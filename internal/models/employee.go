package models

// Employee represents an employee entity.
type Employee struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}
