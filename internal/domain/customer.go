package domain

import (
	"errors"
	"time"
)

var (
	// ErrEmailAlreadyExists indicates that a customer with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrCustomerNotFound indicates that the customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrWrongPassword indicates the wrong password for the given customer.
	ErrWrongPassword = errors.New("wrong password")
)

// Customer holds customer identity data.
type Customer struct {
	ID             int32     `json:"id"`
	FirstName      string    `json:"first_name"`
	Surname        string    `json:"surname"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"hashed_password"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// FullName returns the customer's display name.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.Surname
}

// CreateCustomerParams is the input data to register a customer.
type CreateCustomerParams struct {
	FirstName      string `json:"first_name"`
	Surname        string `json:"surname"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	HashedPassword string `json:"hashed_password"`
}

// UpdateCustomerParams is the input data for a profile update.
type UpdateCustomerParams struct {
	ID        int32  `json:"id"`
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

// CustomerWithoutPassword is Customer data excluding credential data.
type CustomerWithoutPassword struct {
	ID        int32     `json:"id"`
	FirstName string    `json:"first_name"`
	Surname   string    `json:"surname"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
