package domain

// Client is a customer record owned by exactly one profile.
type Client struct {
	ClientID string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Timestamps
}
