package models

// Client is the row of the clients table.
type Client struct {
	ClientID string `db:"id"`
	UserID   string `db:"user_id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Phone    string `db:"phone"`
	Address  string `db:"address"`
	Timestamps
}
