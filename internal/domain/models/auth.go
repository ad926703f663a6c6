package models

// TelegramAuth is the payload produced by the Telegram login widget and
// forwarded verbatim to the auth endpoint.
type TelegramAuth struct {
	ID        int64  `json:"id" validate:"required"`
	AuthDate  int64  `json:"auth_date" validate:"required"`
	Hash      string `json:"hash" validate:"required"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
}

// Credentials is what a successful login yields.
type Credentials struct {
	AccessToken string `json:"access_token"`
	AccountID   string `json:"account_id"`
}
