package models

// User represents a customer. Guest users are created ad hoc during guest
// checkout and carry no persistent identity to re-target, so they are never
// eligible for cart reminders.
type User struct {
	BaseModel
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `gorm:"uniqueIndex" json:"email"`
	Phone     string `json:"phone"`
	IsGuest   bool   `gorm:"index" json:"is_guest"`
	Carts     []Cart `json:"carts,omitempty"`
}
