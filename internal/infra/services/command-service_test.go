package services

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lead-connector/internal/domain/entities"
	"lead-connector/internal/infra/logger"
	"lead-connector/internal/infra/repository"
)

const testAdminID int64 = 999

// MockChatProvider is a mock implementation of provider.IChatProvider.
type MockChatProvider struct {
	mock.Mock
}

func (m *MockChatProvider) SendTextMessage(chatID int64, message string) error {
	args := m.Called(chatID, message)
	return args.Error(0)
}

// MockLeadService is a mock implementation of Iservices.ILeadService.
type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) DispatchLead(eventName string, chatID int64, attrs entities.IdentityAttributes) error {
	args := m.Called(eventName, chatID, attrs)
	return args.Error(0)
}

type commandFixture struct {
	service  *CommandService
	users    *UserService
	sessions *SessionService
	chat     *MockChatProvider
	leads    *MockLeadService
}

func newCommandFixture(t *testing.T) *commandFixture {
	t.Helper()

	dir := t.TempDir()
	log := logger.NewLogger(context.Background(), false)

	userRepo := repository.NewFileRepository(filepath.Join(dir, "users.json"), UserKey, log)
	sessionRepo := repository.NewFileRepository(filepath.Join(dir, "sessions.json"), SessionKey, log)
	emailRepo := repository.NewFileRepository(filepath.Join(dir, "emails.json"), EmailKey, log)

	users := NewUserService(userRepo, emailRepo, log)
	sessions := NewSessionService(sessionRepo, log)
	chat := new(MockChatProvider)
	leads := new(MockLeadService)
	broadcast := NewBroadcastService(log, users, chat)

	service := NewCommandService(log, testAdminID, users, sessions, leads, broadcast, chat)

	return &commandFixture{service: service, users: users, sessions: sessions, chat: chat, leads: leads}
}

func messageUpdate(chatID, fromID int64, text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: fromID},
	}
	if strings.HasPrefix(text, "/") {
		cmdLen := len(strings.SplitN(text, " ", 2)[0])
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}}
	}
	return tgbotapi.Update{Message: msg}
}

func TestCommandService_StartRegistersOnce(t *testing.T) {
	f := newCommandFixture(t)

	f.chat.On("SendTextMessage", int64(111), mock.Anything).Return(nil)
	f.leads.On("DispatchLead", "Lead", int64(111), mock.Anything).Return(nil)

	f.service.HandleUpdate(messageUpdate(111, 111, "/start"))
	f.service.HandleUpdate(messageUpdate(111, 111, "/start"))

	users, err := f.users.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1, "re-registering must never duplicate the user entry")
	assert.Equal(t, int64(111), users[0].ChatID)

	f.chat.AssertNumberOfCalls(t, "SendTextMessage", 2)
}

func TestCommandService_StartWithMatchedSessionDispatchesLead(t *testing.T) {
	f := newCommandFixture(t)

	require.NoError(t, f.sessions.UpsertSession(entities.SessionRecord{
		SessionToken: "abc", BrowserID: "fb.1.123", ClickID: "fb.1.456",
	}))

	dispatched := make(chan entities.IdentityAttributes, 1)
	f.chat.On("SendTextMessage", int64(111), mock.Anything).Return(nil)
	f.leads.On("DispatchLead", "Lead", int64(111), mock.Anything).
		Run(func(args mock.Arguments) {
			dispatched <- args.Get(2).(entities.IdentityAttributes)
		}).Return(nil)

	f.service.HandleUpdate(messageUpdate(111, 111, "/start abc"))

	select {
	case attrs := <-dispatched:
		assert.Equal(t, "fb.1.123", attrs.BrowserID)
		assert.Equal(t, "fb.1.456", attrs.ClickID)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a lead dispatch for the matched session")
	}
}

func TestCommandService_StartWithUnknownTokenDispatchesEmptyAttributes(t *testing.T) {
	f := newCommandFixture(t)

	dispatched := make(chan entities.IdentityAttributes, 1)
	f.chat.On("SendTextMessage", int64(111), mock.Anything).Return(nil)
	f.leads.On("DispatchLead", "Lead", int64(111), mock.Anything).
		Run(func(args mock.Arguments) {
			dispatched <- args.Get(2).(entities.IdentityAttributes)
		}).Return(nil)

	f.service.HandleUpdate(messageUpdate(111, 111, "/start missing-token"))

	select {
	case attrs := <-dispatched:
		assert.True(t, attrs.Empty(), "an unmatched token degrades to empty attributes")
	case <-time.After(2 * time.Second):
		t.Fatal("expected the dispatch attempt to reach the lead service")
	}
}

func TestCommandService_EmailCaptureUpsertsAndConfirms(t *testing.T) {
	f := newCommandFixture(t)

	dispatched := make(chan entities.IdentityAttributes, 2)
	f.chat.On("SendTextMessage", int64(111), "📧 Email registrado: user@example.com").Return(nil).Once()
	f.chat.On("SendTextMessage", int64(111), "📧 Email registrado: other@example.com").Return(nil).Once()
	f.leads.On("DispatchLead", "CompleteRegistration", int64(111), mock.Anything).
		Run(func(args mock.Arguments) {
			dispatched <- args.Get(2).(entities.IdentityAttributes)
		}).Return(nil)

	f.service.HandleUpdate(messageUpdate(111, 111, " User@Example.com "))
	f.service.HandleUpdate(messageUpdate(111, 111, "other@example.com"))

	for i := 0; i < 2; i++ {
		select {
		case attrs := <-dispatched:
			assert.NotEmpty(t, attrs.Email)
		case <-time.After(2 * time.Second):
			t.Fatal("expected a CompleteRegistration dispatch per captured email")
		}
	}

	records, err := f.users.EmailRepository.FindAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "a second email overwrites, never duplicates")
	assert.Equal(t, "other@example.com", records[0].Email)

	f.chat.AssertExpectations(t)
}

func TestCommandService_NonEmailFreeTextIsIgnored(t *testing.T) {
	f := newCommandFixture(t)

	f.service.HandleUpdate(messageUpdate(111, 111, "hola, quiero info"))

	f.chat.AssertNumberOfCalls(t, "SendTextMessage", 0)
	f.leads.AssertNumberOfCalls(t, "DispatchLead", 0)
}

func TestCommandService_BroadcastDeniedForNonAdmin(t *testing.T) {
	f := newCommandFixture(t)

	require.NoError(t, f.users.RegisterUser(111))

	f.chat.On("SendTextMessage", int64(555), "❌ No tenés permiso para usar este comando.").Return(nil).Once()

	f.service.HandleUpdate(messageUpdate(555, 555, "/broadcast hello"))

	f.chat.AssertExpectations(t)
	f.chat.AssertNumberOfCalls(t, "SendTextMessage", 1)
}

func TestCommandService_BroadcastWithNoUsers(t *testing.T) {
	f := newCommandFixture(t)

	f.chat.On("SendTextMessage", testAdminID, "⚠️ No hay usuarios registrados todavía.").Return(nil).Once()

	f.service.HandleUpdate(messageUpdate(testAdminID, testAdminID, "/broadcast hello"))

	f.chat.AssertExpectations(t)
	f.chat.AssertNumberOfCalls(t, "SendTextMessage", 1)
}

func TestCommandService_BroadcastDeliversToAllUsers(t *testing.T) {
	f := newCommandFixture(t)

	require.NoError(t, f.users.RegisterUser(111))
	require.NoError(t, f.users.RegisterUser(222))

	f.chat.On("SendTextMessage", int64(111), "hello").Return(nil).Once()
	f.chat.On("SendTextMessage", int64(222), "hello").Return(nil).Once()
	f.chat.On("SendTextMessage", testAdminID, "✅ Broadcast enviado a todos los usuarios.").Return(nil).Once()

	f.service.HandleUpdate(messageUpdate(testAdminID, testAdminID, "/broadcast hello"))

	f.chat.AssertExpectations(t)
}

func TestCommandService_BroadcastEmptyMessageShowsUsage(t *testing.T) {
	f := newCommandFixture(t)

	f.chat.On("SendTextMessage", testAdminID, "Uso: /broadcast <mensaje>").Return(nil).Once()

	f.service.HandleUpdate(messageUpdate(testAdminID, testAdminID, "/broadcast"))

	f.chat.AssertExpectations(t)
	f.chat.AssertNumberOfCalls(t, "SendTextMessage", 1)
}
