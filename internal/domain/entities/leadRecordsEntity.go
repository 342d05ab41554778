package entities

// RegisteredUser is one chat participant known to the bot. Users are only ever
// added, never removed.
type RegisteredUser struct {
	ChatID int64 `json:"chatId"`
}

// SessionRecord correlates a landing-page visit with a later chat interaction.
// BrowserID and ClickID are the ad platform's first-party cookie values and are
// each independently optional.
type SessionRecord struct {
	SessionToken string `json:"sessionToken"`
	BrowserID    string `json:"browserId,omitempty"`
	ClickID      string `json:"clickId,omitempty"`
}

// EmailRecord holds the last email address a user sent to the bot. One record
// per chat id; a newer email overwrites the previous one.
type EmailRecord struct {
	ChatID int64  `json:"chatId"`
	Email  string `json:"email"`
}

// IdentityAttributes carries the optional identity fields attached to a
// conversion event. Email is the raw address here; it is hashed before it is
// ever serialized.
type IdentityAttributes struct {
	BrowserID string
	ClickID   string
	Email     string
}

// Empty reports whether no identity attribute is set.
func (a IdentityAttributes) Empty() bool {
	return a.BrowserID == "" && a.ClickID == "" && a.Email == ""
}
