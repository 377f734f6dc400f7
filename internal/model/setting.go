package model

// Setting is a key/value application setting stored in the database.
type Setting struct {
	Key   string `json:"key" db:"key"`
	Value string `json:"value" db:"value"`
}

// Well-known setting keys.
const (
	SettingBaseDomain = "base_domain"
)
