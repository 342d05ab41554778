package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"lead-connector/internal/domain/dto"
	"lead-connector/internal/domain/entities"
	"lead-connector/internal/infra/logger"
	"lead-connector/internal/util"
)

const (
	clientUserAgent = "TelegramBot"
	actionSource    = "system_generated"
	graphAPIVersion = "v18.0"
)

// LeadService builds and transmits conversion events to the graph events
// endpoint.
type LeadService struct {
	Logger      *logger.Logger
	HttpClient  *http.Client
	GraphAPIURL string
	PixelID     string
	AccessToken string
}

func NewLeadService(logger *logger.Logger, httpClient *http.Client, graphAPIURL, pixelID, accessToken string) *LeadService {
	return &LeadService{
		Logger:      logger,
		HttpClient:  httpClient,
		GraphAPIURL: graphAPIURL,
		PixelID:     pixelID,
		AccessToken: accessToken,
	}
}

// DispatchLead sends one conversion event for the given chat id.
//
// Policy: the event is only sent when at least one real identity attribute is
// present (browser id, click id or email); a start without a matched session
// produces no event. An email is lowercased, trimmed and SHA-256 hashed before
// inclusion; the raw address is never serialized. When the pixel id or access
// token is unset, dispatch is a logged no-op. Delivery is best effort: a failed
// POST is logged with whatever response body is available and then dropped,
// with no retry.
func (ls *LeadService) DispatchLead(eventName string, chatID int64, attrs entities.IdentityAttributes) error {
	if ls.PixelID == "" || ls.AccessToken == "" {
		ls.Logger.Info("Pixel id or access token not configured, skipping conversion event.")
		return nil
	}

	if attrs.Empty() {
		ls.Logger.Info(fmt.Sprintf("No identity attributes for chat %d, skipping %s event.", chatID, eventName))
		return nil
	}

	userData := dto.EventUserData{
		ClientUserAgent: clientUserAgent,
		ExternalID:      strconv.FormatInt(chatID, 10),
		BrowserID:       attrs.BrowserID,
		ClickID:         attrs.ClickID,
	}
	if attrs.Email != "" {
		userData.HashedEmail = util.HashEmail(attrs.Email)
	}

	payload := dto.EventRequest{
		Data: []dto.ConversionEvent{
			{
				EventName:    eventName,
				EventTime:    time.Now().Unix(),
				ActionSource: actionSource,
				UserData:     userData,
			},
		},
		AccessToken: ls.AccessToken,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		ls.Logger.Error(fmt.Sprintf("Failed to marshal conversion event: %v", err))
		return err
	}

	apiURL := fmt.Sprintf("%s/%s/%s/events", ls.GraphAPIURL, graphAPIVersion, ls.PixelID)

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		ls.Logger.Error(fmt.Sprintf("Failed to create HTTP request: %v", err))
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := ls.HttpClient.Do(req)
	if err != nil {
		ls.Logger.Error(fmt.Sprintf("Conversion API request failed: %v", err))
		return err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		ls.Logger.Error(fmt.Sprintf("Conversion API returned %s response_body %s", res.Status, string(body)))
		return fmt.Errorf("conversion API returned error: %s", res.Status)
	}

	ls.Logger.Info(fmt.Sprintf("%s event sent for chat %d response_body %s", eventName, chatID, string(body)))
	return nil
}
