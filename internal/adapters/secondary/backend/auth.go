package backend

import (
	"context"
	"fmt"
	"net/http"

	"diagram-editor-service/internal/core/domain"
)

type loginRequest struct {
	Username string `json:"nombre_usuario"`
	Password string `json:"contrasena"`
}

// Login authenticates against the backend and keeps the cookies it sets as
// the session's credentials.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	res, err := c.do(ctx, nil, http.MethodPost, "/api/auth/login", nil, loginRequest{
		Username: creds.Username,
		Password: creds.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	sess := &domain.Session{}
	if err := res.body.field("id_usuario", &sess.UserID); err != nil {
		return nil, err
	}
	_ = res.body.field("id_rol", &sess.RoleID)
	_ = res.body.field("nombre_usuario", &sess.Username)
	_ = res.body.field("nombre_rol", &sess.RoleName)
	if sess.Username == "" {
		sess.Username = creds.Username
	}
	for _, ck := range res.cookies {
		if ck.Value == "" || ck.MaxAge < 0 {
			continue
		}
		sess.Cookies = append(sess.Cookies, domain.Cookie{Name: ck.Name, Value: ck.Value})
	}
	return sess, nil
}

func (c *Client) Logout(ctx context.Context, sess *domain.Session) error {
	if _, err := c.do(ctx, sess, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
