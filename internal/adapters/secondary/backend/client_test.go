package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diagram-editor-service/internal/config"
	"diagram-editor-service/internal/core/domain"
)

var sess = &domain.Session{UserID: 1, Cookies: []domain.Cookie{{Name: "JSESSIONID", Value: "abc123"}}}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(&config.BackendConfig{URL: srv.URL + "/", Timeout: 2 * time.Second})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_GetDiagram(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/diagramas", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("id_diagrama"))
		ck, err := r.Cookie("JSESSIONID")
		require.NoError(t, err)
		assert.Equal(t, "abc123", ck.Value)

		writeJSON(w, http.StatusOK, map[string]any{
			"ok": true,
			"diagrama": map[string]any{
				"id_diagrama":  7,
				"id_usuario":   1,
				"nombre":       "Library",
				"estado":       "BORRADOR",
				"ancho_lienzo": 1200,
				"alto_lienzo":  800,
			},
		})
	})

	d, err := c.GetDiagram(context.Background(), sess, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), d.ID)
	assert.Equal(t, domain.DiagramStatusDraft, d.Status)
	assert.Equal(t, 1200, d.CanvasWidth)
	assert.Nil(t, d.ConfigJSON)
}

func TestClient_ListElements(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/elementos", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("id_diagrama"))
		writeJSON(w, http.StatusOK, map[string]any{
			"ok": true,
			"elementos": []map[string]any{
				{"id_elemento": 5, "id_diagrama": 7, "tipo_elemento": "ACTOR", "etiqueta": "User",
					"pos_x": 10, "pos_y": 20, "ancho": 60, "alto": 100, "rotacion_grados": 12.5, "orden_z": 1,
					"estilo_json": `{"fill":"#fff"}`},
			},
		})
	})

	elements, err := c.ListElements(context.Background(), sess, 7)

	require.NoError(t, err)
	require.Len(t, elements, 1)
	e := elements[0]
	assert.Equal(t, domain.ElementTypeActor, e.Type)
	assert.Equal(t, 12.5, e.Rotation)
	require.NotNil(t, e.StyleJSON)
	assert.Equal(t, `{"fill":"#fff"}`, *e.StyleJSON)
	assert.Nil(t, e.ParentID)
}

func TestClient_CreateConnection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(5), body["id_elemento_origen"])
		assert.Equal(t, float64(9), body["id_elemento_destino"])
		assert.Equal(t, "GENERALIZACION", body["tipo_conexion"])
		assert.Nil(t, body["etiqueta"])
		_, hasID := body["id_conexion"]
		assert.False(t, hasID)

		writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "id_conexion": 30})
	})

	id, err := c.CreateConnection(context.Background(), sess, &domain.Connection{
		DiagramID: 7, SourceID: 5, TargetID: 9, Type: domain.ConnectionTypeGeneralization,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(30), id)
}

func TestClient_RemoteError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "mensaje": "Diagrama no encontrado"})
	})

	_, err := c.GetDiagram(context.Background(), sess, 99)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "Diagrama no encontrado", remote.Message)
	assert.Equal(t, "Diagrama no encontrado", domain.UserMessage(err, "fallback"))
}

func TestClient_OkFalseIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": false, "mensaje": "Sin permisos"})
	})

	err := c.DeleteElement(context.Background(), sess, 5)

	assert.ErrorIs(t, err, domain.ErrBackendRejected)
}

func TestClient_NoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "20", r.URL.Query().Get("id_conexion"))
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.DeleteConnection(context.Background(), sess, 20))
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(&config.BackendConfig{URL: srv.URL, Timeout: time.Second})

	_, err := c.ListDiagrams(context.Background(), sess)

	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.False(t, c.IsAvailable(context.Background()))
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var body loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana", body.Username)
		assert.Equal(t, "secret", body.Password)

		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "xyz", Path: "/"})
		writeJSON(w, http.StatusOK, map[string]any{
			"ok": true, "id_usuario": 3, "id_rol": 1, "nombre_usuario": "ana", "nombre_rol": "ADMIN",
		})
	})

	s, err := c.Login(context.Background(), domain.Credentials{Username: "ana", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), s.UserID)
	assert.Equal(t, "ADMIN", s.RoleName)
	assert.Equal(t, []domain.Cookie{{Name: "JSESSIONID", Value: "xyz"}}, s.Cookies)
}

func TestClient_Login_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "mensaje": "Credenciales invalidas"})
	})

	_, err := c.Login(context.Background(), domain.Credentials{Username: "ana", Password: "bad"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestClient_UploadFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "IMAGEN", r.FormValue("tipo_media"))
		assert.Equal(t, "Logo", r.FormValue("titulo"))
		f, hdr, err := r.FormFile("archivo")
		require.NoError(t, err)
		defer f.Close()
		content, _ := io.ReadAll(f)
		assert.Equal(t, "logo.jpg", hdr.Filename)
		assert.Equal(t, "jpegdata", string(content))

		writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "id_archivo": 8, "ruta_archivo": "uploads/abc.jpg"})
	})

	f, err := c.UploadFile(context.Background(), sess, &domain.Upload{
		Filename: "logo.jpg", Type: domain.MediaTypeImage, Title: "Logo", Content: []byte("jpegdata"), Size: 8,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(8), f.ID)
	assert.Equal(t, "uploads/abc.jpg", f.Path)
	assert.Equal(t, int64(1), f.UserID)
}

func TestClient_RemoveElementMedia(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/elemento-multimedia", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("id_elemento"))
		assert.Equal(t, "8", r.URL.Query().Get("id_archivo"))
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	assert.NoError(t, c.RemoveElementMedia(context.Background(), sess, 5, 8))
}
