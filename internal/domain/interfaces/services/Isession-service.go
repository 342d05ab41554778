package Iservices

import "lead-connector/internal/domain/entities"

type ISessionService interface {
	UpsertSession(record entities.SessionRecord) error
	MatchSession(token string) (entities.SessionRecord, bool)
}
