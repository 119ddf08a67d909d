package store

import "time"

// User is a registered operator account. The password field holds a bcrypt
// hash and is never serialized.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Email    string `json:"email,omitempty"`
	OrgCode  string `json:"orgCode,omitempty"`
}

// Analysis is a stored submission plus the two generated report strings.
// CreatedAt is kept as an RFC3339 string on the wire.
type Analysis struct {
	ID               int    `json:"id"`
	UserID           int    `json:"userId"`
	TargetAccount    string `json:"targetAccount"`
	ContentType      string `json:"contentType"`
	Content          string `json:"content"`
	SemanticAnalysis string `json:"semanticAnalysis"`
	ThreatAnalysis   string `json:"threatAnalysis"`
	CreatedAt        string `json:"createdAt"`
}

// ContactRequest is a support inquiry with a resolution flag.
type ContactRequest struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	Resolved  bool   `json:"resolved"`
}

// Session is a server-side login session. Deleting it revokes the
// corresponding token regardless of its expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats holds entity counts for the admin surface.
type Stats struct {
	Users           int `json:"users"`
	Analyses        int `json:"analyses"`
	ContactRequests int `json:"contactRequests"`
}
