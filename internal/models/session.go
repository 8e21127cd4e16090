package models

import "time"

// Session is the ephemeral logged-in user record. It lives in the
// process-scoped store and is never written to durable storage.
type Session struct {
	Email     string    `json:"email"`
	LoginTime time.Time `json:"loginTime"`
}
