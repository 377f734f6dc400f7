package request

// CreateServer holds the request body for registering a hosting server.
type CreateServer struct {
	RemoteID  string `json:"remote_id" validate:"required,min=1,max=255"`
	Name      string `json:"name" validate:"required,min=1,max=255"`
	IPAddress string `json:"ip_address" validate:"omitempty,ip"`
	Status    string `json:"status" validate:"omitempty,oneof=connected maintenance disconnected"`
}

// UpdateServer holds the request body for updating a hosting server.
// Empty fields keep their current value.
type UpdateServer struct {
	RemoteID  string `json:"remote_id"`
	Name      string `json:"name"`
	IPAddress string `json:"ip_address" validate:"omitempty,ip"`
	Status    string `json:"status" validate:"omitempty,oneof=connected maintenance disconnected"`
}
