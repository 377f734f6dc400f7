package model

import "time"

// Server is a remote host capable of running WordPress sites. RemoteID is
// the identifier the hosting automation API knows the machine by; it is
// opaque to this application.
type Server struct {
	ID        string    `json:"id" db:"id"`
	RemoteID  string    `json:"remote_id" db:"remote_id"`
	Name      string    `json:"name" db:"name"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
