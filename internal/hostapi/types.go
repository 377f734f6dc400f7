package hostapi

// App identifies a WordPress application on the hosting platform.
type App struct {
	ID         string `json:"id"`
	PHPVersion string `json:"php_version,omitempty"`
}

// Credentials are the access credentials the hosting platform generates
// for a freshly installed application.
type Credentials struct {
	SysUser      string `json:"sys_user"`
	SysPassword  string `json:"sys_password"`
	WPUser       string `json:"wp_user"`
	WPPassword   string `json:"wp_password"`
	DatabaseName string `json:"database_name"`
}

// CreateSiteResult is the payload returned by a successful site creation.
type CreateSiteResult struct {
	App         App         `json:"app"`
	Credentials Credentials `json:"credentials"`
}

// DatabaseInfo describes the database backing an application.
type DatabaseInfo struct {
	DatabaseID   string `json:"database_id"`
	DatabaseName string `json:"database_name"`
	DatabaseHost string `json:"database_host"`
}

// DatabaseUsers holds the credentials of the database user created for
// an application. Either field may be empty if the platform has not
// finished creating the user yet.
type DatabaseUsers struct {
	Username string `json:"database_username"`
	Password string `json:"database_password"`
}
