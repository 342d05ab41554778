package services

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lead-connector/internal/domain/entities"
	Iservices "lead-connector/internal/domain/interfaces/services"
	"lead-connector/internal/infra/logger"
	"lead-connector/internal/infra/provider"
	"lead-connector/internal/util"
)

const (
	welcomeMessage = "👋 ¡Bienvenido/a!\n\nYa quedaste registrado en nuestro bot oficial.\nCuando llegás desde la landing, este inicio se registra como un LEAD en nuestro sistema."
	noPermission   = "❌ No tenés permiso para usar este comando."
	noUsers        = "⚠️ No hay usuarios registrados todavía."
	broadcastDone  = "✅ Broadcast enviado a todos los usuarios."
	broadcastUsage = "Uso: /broadcast <mensaje>"
)

// CommandService routes inbound chat updates: /start with an optional deep-link
// token, admin /broadcast, and free-text email capture. Free text that is not
// an email is silently ignored.
type CommandService struct {
	Logger           *logger.Logger
	AdminChatID      int64
	UserService      Iservices.IUserService
	SessionService   Iservices.ISessionService
	LeadService      Iservices.ILeadService
	BroadcastService Iservices.IBroadcastService
	ChatProvider     provider.IChatProvider
}

func NewCommandService(logger *logger.Logger, adminChatID int64, userService Iservices.IUserService, sessionService Iservices.ISessionService, leadService Iservices.ILeadService, broadcastService Iservices.IBroadcastService, chatProvider provider.IChatProvider) *CommandService {
	return &CommandService{
		Logger:           logger,
		AdminChatID:      adminChatID,
		UserService:      userService,
		SessionService:   sessionService,
		LeadService:      leadService,
		BroadcastService: broadcastService,
		ChatProvider:     chatProvider,
	}
}

// HandleUpdate processes one inbound update. Every update is handled
// independently; nothing here may crash the process.
func (cs *CommandService) HandleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	msg := update.Message
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			cs.handleStart(chatID, strings.TrimSpace(msg.CommandArguments()))
		case "broadcast":
			fromID := chatID
			if msg.From != nil {
				fromID = msg.From.ID
			}
			cs.handleBroadcast(fromID, chatID, strings.TrimSpace(msg.CommandArguments()))
		default:
			cs.Logger.Warn(fmt.Sprintf("Unknown command '%s' from chat %d", msg.Command(), chatID))
		}
		return
	}

	cs.handleFreeText(chatID, msg.Text)
}

// handleStart registers the user (idempotent), resolves the optional deep-link
// token to stored session attributes, fires the lead event and replies with the
// fixed welcome. The reply never waits on the conversion call.
func (cs *CommandService) handleStart(chatID int64, token string) {
	if err := cs.UserService.RegisterUser(chatID); err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to persist registration for %d: %v", chatID, err))
	}

	attrs := entities.IdentityAttributes{}
	if token != "" {
		if record, ok := cs.SessionService.MatchSession(token); ok {
			attrs.BrowserID = record.BrowserID
			attrs.ClickID = record.ClickID
			cs.Logger.Info(fmt.Sprintf("Start with session %s (browserId: %q, clickId: %q)",
				token, attrs.BrowserID, attrs.ClickID))
		}
	} else {
		cs.Logger.Info(fmt.Sprintf("Start without session token from chat %d", chatID))
	}

	cs.dispatchAsync("Lead", chatID, attrs)

	if err := cs.ChatProvider.SendTextMessage(chatID, welcomeMessage); err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to send welcome to %d: %v", chatID, err))
	}
}

// handleFreeText captures email addresses; anything else is a no-op.
func (cs *CommandService) handleFreeText(chatID int64, text string) {
	if !util.IsEmailAddress(text) {
		return
	}

	email := util.NormalizeEmail(text)
	if err := cs.UserService.UpsertEmail(chatID, email); err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to store email for %d: %v", chatID, err))
	}

	cs.dispatchAsync("CompleteRegistration", chatID, entities.IdentityAttributes{Email: email})

	confirmation := fmt.Sprintf("📧 Email registrado: %s", email)
	if err := cs.ChatProvider.SendTextMessage(chatID, confirmation); err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to confirm email to %d: %v", chatID, err))
	}
}

func (cs *CommandService) handleBroadcast(fromID, chatID int64, message string) {
	if fromID != cs.AdminChatID {
		cs.Logger.Warn(fmt.Sprintf("Broadcast denied for non-admin %d", fromID))
		cs.reply(chatID, noPermission)
		return
	}

	if message == "" {
		cs.reply(chatID, broadcastUsage)
		return
	}

	users, err := cs.UserService.ListUsers()
	if err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to load users for broadcast: %v", err))
		return
	}

	if len(users) == 0 {
		cs.reply(chatID, noUsers)
		return
	}

	sent, failed := cs.BroadcastService.SendToAll(message)
	cs.Logger.Info(fmt.Sprintf("Broadcast finished: %d sent, %d failed", sent, failed))

	cs.reply(chatID, broadcastDone)
}

// dispatchAsync fires the conversion event on its own goroutine so the
// user-facing reply never waits on the external API.
func (cs *CommandService) dispatchAsync(eventName string, chatID int64, attrs entities.IdentityAttributes) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				cs.Logger.Error(fmt.Sprintf("Recovered from panic in lead dispatch: %v", r))
			}
		}()

		if err := cs.LeadService.DispatchLead(eventName, chatID, attrs); err != nil {
			cs.Logger.Error(fmt.Sprintf("Failed to dispatch %s for chat %d: %v", eventName, chatID, err))
		}
	}()
}

func (cs *CommandService) reply(chatID int64, message string) {
	if err := cs.ChatProvider.SendTextMessage(chatID, message); err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to reply to %d: %v", chatID, err))
	}
}
