package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User starts inactive on registration and is activated by OTP verification.
// Login is refused while IsActive is false.
type User struct {
	Base
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	FullName     string   `db:"full_name"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
