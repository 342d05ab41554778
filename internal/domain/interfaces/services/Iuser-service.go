package Iservices

import "lead-connector/internal/domain/entities"

// IUserService defines the methods the user registry must implement.
type IUserService interface {
	RegisterUser(chatID int64) error
	ListUsers() ([]entities.RegisteredUser, error)
	UpsertEmail(chatID int64, email string) error
}
