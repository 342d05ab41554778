package dto

type SessionRequest struct {
	SessionToken string `json:"sessionToken"`
	BrowserID    string `json:"browserId"`
	ClickID      string `json:"clickId"`
}

type SessionResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
