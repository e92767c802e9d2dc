package models

// Session is a bearer-token login with a fixed expiry window.
// Expiry is stored as an RFC3339 string and checked lazily on resolution.
type Session struct {
	Token     string `db:"token" json:"token"`
	UserID    int64  `db:"user_id" json:"-"`
	ExpiresAt string `db:"expires_at" json:"expiresAt"`
}

// ResolvedSession is what the auth layer hands to protected handlers.
type ResolvedSession struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	User      User   `json:"user"`
}
