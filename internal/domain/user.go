package domain

import "time"

// UserRole tags an account's capabilities.
type UserRole string

const (
	RoleCustomer UserRole = "Customer"
	RoleAgent    UserRole = "Agent"
	RoleAdmin    UserRole = "Admin"
)

// User is the domain model for every account: customers who file
// complaints, agents who resolve them, and admins.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         UserRole
	CreatedAt    time.Time
}
