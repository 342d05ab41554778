package services

import (
	"fmt"

	"lead-connector/internal/domain/entities"
	"lead-connector/internal/domain/interfaces/repository"
	"lead-connector/internal/infra/logger"
)

// SessionService is the service responsible for session record business logic.
type SessionService struct {
	SessionRepository repository.Repository[entities.SessionRecord]
	Logger            *logger.Logger
}

// NewSessionService creates a new instance of the service.
func NewSessionService(sessionRepository repository.Repository[entities.SessionRecord], logger *logger.Logger) *SessionService {
	return &SessionService{
		SessionRepository: sessionRepository,
		Logger:            logger,
	}
}

// UpsertSession stores a session record keyed by its token. A previously seen
// token is overwritten, never duplicated.
func (ss *SessionService) UpsertSession(record entities.SessionRecord) error {
	if err := ss.SessionRepository.Upsert(record); err != nil {
		ss.Logger.Error(fmt.Sprintf("Failed to upsert session '%s': %v", record.SessionToken, err))
		return err
	}

	ss.Logger.Info(fmt.Sprintf("Session stored: %s (browserId: %q, clickId: %q)",
		record.SessionToken, record.BrowserID, record.ClickID))
	return nil
}

// MatchSession resolves a deep-link token to its stored browser-identity
// attributes. Matching is exact and case-sensitive; an unknown token is logged
// and reported as not found.
func (ss *SessionService) MatchSession(token string) (entities.SessionRecord, bool) {
	records, err := ss.SessionRepository.FindAll()
	if err != nil {
		ss.Logger.Error(fmt.Sprintf("Failed to load sessions while matching '%s': %v", token, err))
		return entities.SessionRecord{}, false
	}

	for _, record := range records {
		if record.SessionToken == token {
			return record, true
		}
	}

	ss.Logger.Warn(fmt.Sprintf("Session token '%s' not found", token))
	return entities.SessionRecord{}, false
}
