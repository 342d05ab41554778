package services

import (
	"fmt"

	Iservices "lead-connector/internal/domain/interfaces/services"
	"lead-connector/internal/infra/logger"
	"lead-connector/internal/infra/provider"
)

// BroadcastService fans a message out to every registered user.
type BroadcastService struct {
	Logger       *logger.Logger
	UserService  Iservices.IUserService
	ChatProvider provider.IChatProvider
}

func NewBroadcastService(logger *logger.Logger, userService Iservices.IUserService, chatProvider provider.IChatProvider) *BroadcastService {
	return &BroadcastService{Logger: logger, UserService: userService, ChatProvider: chatProvider}
}

// SendToAll attempts delivery to every registered user. A failed delivery
// (blocked bot, deleted account) is logged for that recipient and the loop
// continues; it never aborts the remaining sends. There is no rate limiting,
// which risks platform limits on large user sets.
func (bs *BroadcastService) SendToAll(message string) (sent int, failed int) {
	users, err := bs.UserService.ListUsers()
	if err != nil {
		bs.Logger.Error(fmt.Sprintf("Failed to load users for broadcast: %v", err))
		return 0, 0
	}

	bs.Logger.Info(fmt.Sprintf("Broadcasting to %d users", len(users)))

	for _, user := range users {
		if err := bs.ChatProvider.SendTextMessage(user.ChatID, message); err != nil {
			bs.Logger.Error(fmt.Sprintf("Broadcast delivery failed for %d: %v", user.ChatID, err))
			failed++
			continue
		}
		sent++
	}

	return sent, failed
}
