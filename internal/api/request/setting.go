package request

// UpdateSetting holds the request body for writing a setting value.
type UpdateSetting struct {
	Value string `json:"value" validate:"required,min=1,max=255"`
}
