package dto

import (
	"time"

	"diagram-editor-service/internal/core/domain"
)

type LoginRequest struct {
	Username string `json:"nombre_usuario" binding:"required"`
	Password string `json:"contrasena" binding:"required"`
}

// SessionResponse is the logged-in user without the backend cookies.
type SessionResponse struct {
	UserID   int64     `json:"id_usuario"`
	RoleID   int64     `json:"id_rol"`
	Username string    `json:"nombre_usuario"`
	RoleName string    `json:"nombre_rol"`
	LoggedAt time.Time `json:"logged_at"`
}

func ToSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		UserID:   s.UserID,
		RoleID:   s.RoleID,
		Username: s.Username,
		RoleName: s.RoleName,
		LoggedAt: s.LoggedAt,
	}
}
