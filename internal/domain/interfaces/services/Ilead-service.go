package Iservices

import "lead-connector/internal/domain/entities"

type ILeadService interface {
	DispatchLead(eventName string, chatID int64, attrs entities.IdentityAttributes) error
}
