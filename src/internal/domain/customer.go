package domain

import "time"

type Customer struct {
	ID            string
	FullName      string
	IDNumber      string
	AccountNumber string
	PasswordHash  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
