package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-connector/internal/domain/entities"
	"lead-connector/internal/infra/logger"
	"lead-connector/internal/infra/repository"
)

func newSessionService(t *testing.T) *SessionService {
	t.Helper()
	log := logger.NewLogger(context.Background(), false)
	repo := repository.NewFileRepository(filepath.Join(t.TempDir(), "sessions.json"), SessionKey, log)
	return NewSessionService(repo, log)
}

func TestSessionService_MatchSession(t *testing.T) {
	service := newSessionService(t)

	require.NoError(t, service.UpsertSession(entities.SessionRecord{SessionToken: "abc", BrowserID: "b1"}))

	record, ok := service.MatchSession("abc")
	require.True(t, ok)
	assert.Equal(t, "b1", record.BrowserID)
	assert.Empty(t, record.ClickID)

	// Exact, case-sensitive matching only.
	_, ok = service.MatchSession("ABC")
	assert.False(t, ok)

	_, ok = service.MatchSession("never-seen")
	assert.False(t, ok)
}

func TestSessionService_UpsertOverwritesByToken(t *testing.T) {
	service := newSessionService(t)

	require.NoError(t, service.UpsertSession(entities.SessionRecord{SessionToken: "abc", BrowserID: "b1"}))
	require.NoError(t, service.UpsertSession(entities.SessionRecord{SessionToken: "abc", ClickID: "c1"}))

	record, ok := service.MatchSession("abc")
	require.True(t, ok)
	assert.Empty(t, record.BrowserID, "last write wins on conflicting fields")
	assert.Equal(t, "c1", record.ClickID)

	records, err := service.SessionRepository.FindAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
