package provider

type IChatProvider interface {
	SendTextMessage(chatID int64, message string) error
}
