package domain

import "time"

// SessionStorageKey is where the logged-in user is persisted.
const SessionStorageKey = "session_user"

// SessionKey scopes the storage key to one browser session. An empty sid is
// the single local session of the CLI.
func SessionKey(sid string) string {
	if sid == "" {
		return SessionStorageKey
	}
	return SessionStorageKey + ":" + sid
}

// Cookie is a backend session cookie replayed on every remote call.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Session is the logged-in user as returned by the backend login, plus the
// cookies that keep the backend session alive.
type Session struct {
	UserID   int64     `json:"id_usuario"`
	RoleID   int64     `json:"id_rol"`
	Username string    `json:"nombre_usuario"`
	RoleName string    `json:"nombre_rol"`
	Cookies  []Cookie  `json:"cookies,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

// Credentials for the backend login.
type Credentials struct {
	Username string
	Password string
}
