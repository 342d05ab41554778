package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"lead-connector/internal/domain/dto"
	"lead-connector/internal/domain/entities"
	Iservices "lead-connector/internal/domain/interfaces/services"
	"lead-connector/internal/infra/logger"
)

type SessionHandlers struct {
	Logger         *logger.Logger
	SessionService Iservices.ISessionService
}

func NewSessionHandlers(logger *logger.Logger, sessionService Iservices.ISessionService) *SessionHandlers {
	return &SessionHandlers{Logger: logger, SessionService: sessionService}
}

// TelegramSession receives the landing page's session registration.
//
// Body: { sessionToken, browserId?, clickId? }. The token is the only required
// field; browser and click ids are each optional. Responds 200 {ok:true} on
// success and 400 {ok:false,error} when the token is missing or the body is
// not valid JSON. No state is mutated on rejection.
func (th *SessionHandlers) TelegramSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request dto.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		th.Logger.Error(fmt.Sprintf("Invalid session payload: %v", err))
		th.writeJSON(w, http.StatusBadRequest, dto.SessionResponse{Ok: false, Error: "invalid JSON body"})
		return
	}
	defer r.Body.Close()

	if request.SessionToken == "" {
		th.Logger.Warn("Session payload rejected: missing sessionToken")
		th.writeJSON(w, http.StatusBadRequest, dto.SessionResponse{Ok: false, Error: "sessionToken is required"})
		return
	}

	record := entities.SessionRecord{
		SessionToken: request.SessionToken,
		BrowserID:    request.BrowserID,
		ClickID:      request.ClickID,
	}

	if err := th.SessionService.UpsertSession(record); err != nil {
		th.writeJSON(w, http.StatusInternalServerError, dto.SessionResponse{Ok: false, Error: "failed to store session"})
		return
	}

	th.writeJSON(w, http.StatusOK, dto.SessionResponse{Ok: true})
}

func (th *SessionHandlers) writeJSON(w http.ResponseWriter, status int, response dto.SessionResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
