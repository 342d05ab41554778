package dto

// ConversionEvent is one entry of the graph events payload. UserData carries
// only the identity fields that are actually present.
type ConversionEvent struct {
	EventName    string        `json:"event_name"`
	EventTime    int64         `json:"event_time"`
	ActionSource string        `json:"action_source"`
	UserData     EventUserData `json:"user_data"`
}

type EventUserData struct {
	ClientUserAgent string `json:"client_user_agent"`
	ExternalID      string `json:"external_id,omitempty"`
	BrowserID       string `json:"fbp,omitempty"`
	ClickID         string `json:"fbc,omitempty"`
	HashedEmail     string `json:"em,omitempty"`
}

type EventRequest struct {
	Data        []ConversionEvent `json:"data"`
	AccessToken string            `json:"access_token"`
}

type EventResponse struct {
	EventsReceived int    `json:"events_received"`
	FbtraceID      string `json:"fbtrace_id"`
}
