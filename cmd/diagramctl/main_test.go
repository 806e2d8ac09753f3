package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend answers the handful of backend routes the CLI touches.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	writeJSON := func(w http.ResponseWriter, body any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "cli"})
		writeJSON(w, map[string]any{"ok": true, "id_usuario": 3, "id_rol": 1, "nombre_usuario": "ana", "nombre_rol": "ADMIN"})
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/diagramas", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("JSESSIONID")
		if err != nil || ck.Value != "cli" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]any{"ok": false, "mensaje": "No autenticado"})
			return
		}
		d := map[string]any{"id_diagrama": 7, "nombre": "Shop", "estado": "ACTIVO", "ancho_lienzo": 1200, "alto_lienzo": 800}
		if r.URL.Query().Get("id_diagrama") != "" {
			writeJSON(w, map[string]any{"ok": true, "diagrama": d})
			return
		}
		writeJSON(w, map[string]any{"ok": true, "diagramas": []any{d}})
	})
	mux.HandleFunc("/api/elementos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "elementos": []any{
			map[string]any{"id_elemento": 5, "id_diagrama": 7, "tipo_elemento": "ACTOR", "etiqueta": "Customer",
				"pos_x": 100, "pos_y": 100, "ancho": 60, "alto": 100},
			map[string]any{"id_elemento": 9, "id_diagrama": 7, "tipo_elemento": "CASO_DE_USO", "etiqueta": "Checkout",
				"pos_x": 300, "pos_y": 120, "ancho": 140, "alto": 70},
		}})
	})
	mux.HandleFunc("/api/conexiones", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "conexiones": []any{
			map[string]any{"id_conexion": 20, "id_diagrama": 7, "id_elemento_origen": 5, "id_elemento_destino": 9,
				"tipo_conexion": "INCLUSION"},
		}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, dataDir, backendURL string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--data-dir", dataDir, "--backend", backendURL, "--env-file", filepath.Join(dataDir, "none.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_LoginListRenderLogout(t *testing.T) {
	srv := fakeBackend(t)
	dir := t.TempDir()

	out, err := run(t, dir, srv.URL, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")

	out, err = run(t, dir, srv.URL, "login", "-u", "ana", "-p", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "ana (id 3, role ADMIN)")

	out, err = run(t, dir, srv.URL, "diagrams")
	require.NoError(t, err)
	assert.Contains(t, out, "Shop")
	assert.Contains(t, out, "1200x800")

	svgPath := filepath.Join(dir, "shop.svg")
	_, err = run(t, dir, srv.URL, "render", "7", "-o", svgPath)
	require.NoError(t, err)
	svg, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(svg), `stroke-dasharray="6 4"`)
	assert.Contains(t, string(svg), "Checkout")

	pngPath := filepath.Join(dir, "shop.png")
	_, err = run(t, dir, srv.URL, "render", "7", "-o", pngPath)
	require.NoError(t, err)
	png, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	out, err = run(t, dir, srv.URL, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "logged out")

	_, err = run(t, dir, srv.URL, "diagrams")
	assert.Error(t, err)
}

func TestCLI_RenderRejectsBadInput(t *testing.T) {
	srv := fakeBackend(t)
	dir := t.TempDir()

	_, err := run(t, dir, srv.URL, "render", "abc")
	assert.ErrorContains(t, err, "invalid diagram id")

	_, err = run(t, dir, srv.URL, "render", "7", "--format", "pdf")
	assert.ErrorContains(t, err, "unsupported render format")
}
