package models

// Business is the tenant boundary. It owns questions, employees and interviews.
type Business struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// Employee belongs to exactly one business. The bio is free text used as
// context when simulating the employee's answers.
type Employee struct {
	ID         string `db:"id"`
	Email      string `db:"email"`
	Bio        string `db:"bio"`
	BusinessID string `db:"business_id"`
}
