package services

import (
	"fmt"
	"strconv"

	"lead-connector/internal/domain/entities"
	"lead-connector/internal/domain/interfaces/repository"
	"lead-connector/internal/infra/logger"
)

// UserService is the service responsible for the registered-user set and the
// per-user email records.
type UserService struct {
	UserRepository  repository.Repository[entities.RegisteredUser]
	EmailRepository repository.Repository[entities.EmailRecord]
	Logger          *logger.Logger
}

// NewUserService creates a new instance of the service.
func NewUserService(userRepository repository.Repository[entities.RegisteredUser], emailRepository repository.Repository[entities.EmailRecord], logger *logger.Logger) *UserService {
	return &UserService{
		UserRepository:  userRepository,
		EmailRepository: emailRepository,
		Logger:          logger,
	}
}

// RegisterUser adds the chat id to the user set. Registering the same id twice
// keeps a single entry.
func (us *UserService) RegisterUser(chatID int64) error {
	if err := us.UserRepository.Upsert(entities.RegisteredUser{ChatID: chatID}); err != nil {
		us.Logger.Error(fmt.Sprintf("Failed to register user %d: %v", chatID, err))
		return err
	}
	return nil
}

// ListUsers returns every registered user in insertion order.
func (us *UserService) ListUsers() ([]entities.RegisteredUser, error) {
	users, err := us.UserRepository.FindAll()
	if err != nil {
		us.Logger.Error(fmt.Sprintf("Failed to load users: %v", err))
		return nil, err
	}
	return users, nil
}

// UpsertEmail stores the user's email, overwriting any previous address for
// the same chat id.
func (us *UserService) UpsertEmail(chatID int64, email string) error {
	if err := us.EmailRepository.Upsert(entities.EmailRecord{ChatID: chatID, Email: email}); err != nil {
		us.Logger.Error(fmt.Sprintf("Failed to upsert email for user %d: %v", chatID, err))
		return err
	}

	us.Logger.Info(fmt.Sprintf("Email stored for user %d", chatID))
	return nil
}

// UserKey is the upsert key for the registered-user set.
func UserKey(user entities.RegisteredUser) string {
	return strconv.FormatInt(user.ChatID, 10)
}

// EmailKey is the upsert key for email records, one per chat id.
func EmailKey(record entities.EmailRecord) string {
	return strconv.FormatInt(record.ChatID, 10)
}

// SessionKey is the upsert key for session records.
func SessionKey(record entities.SessionRecord) string {
	return record.SessionToken
}
