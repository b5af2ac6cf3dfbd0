package model

// Technician represents the authenticated end user of the app.
// The registry lives in the backend's technicians table; this client only
// ever holds the resolved identity for the session duration.
type Technician struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Whatsapp  string `json:"whatsapp"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
