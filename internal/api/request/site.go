package request

// CreateSite holds the request body for provisioning a new site.
// Subdomain is the bare label; the base domain comes from settings.
type CreateSite struct {
	Subdomain   string `json:"subdomain" validate:"required,subdomain"`
	Reminder    bool   `json:"reminder"`
	NotifyEmail string `json:"notify_email" validate:"omitempty,email"`
}
