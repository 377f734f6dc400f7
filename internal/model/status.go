package model

// Site status constants.
const (
	StatusActive   = "active"
	StatusFailed   = "failed"
	StatusDeleting = "deleting"
)

// Server connectivity status constants. Only connected servers are
// candidates for new site provisioning.
const (
	ServerConnected    = "connected"
	ServerMaintenance  = "maintenance"
	ServerDisconnected = "disconnected"
)
