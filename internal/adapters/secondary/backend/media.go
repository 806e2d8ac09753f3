package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"diagram-editor-service/internal/core/domain"
)

// UploadFile posts the file as multipart form data under the "archivo" field.
func (c *Client) UploadFile(ctx context.Context, sess *domain.Session, u *domain.Upload) (*domain.MediaFile, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("archivo", u.Filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(u.Content); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	fields := map[string]string{
		"tipo_media":  string(u.Type),
		"titulo":      u.Title,
		"descripcion": u.Description,
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/archivos", nil), &buf)
	if err != nil {
		return nil, fmt.Errorf("create backend request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	res, err := c.send(req, sess)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", u.Filename, err)
	}
	id, err := res.body.id("id_archivo")
	if err != nil {
		return nil, err
	}
	f := &domain.MediaFile{
		ID:          id,
		Type:        u.Type,
		Title:       u.Title,
		Description: u.Description,
		SizeBytes:   u.Size,
	}
	if sess != nil {
		f.UserID = sess.UserID
	}
	_ = res.body.field("ruta_archivo", &f.Path)
	return f, nil
}

func (c *Client) ListFiles(ctx context.Context, sess *domain.Session) ([]*domain.MediaFile, error) {
	res, err := c.do(ctx, sess, http.MethodGet, "/api/archivos", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	var files []*domain.MediaFile
	if err := res.body.field("archivos", &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (c *Client) GetFile(ctx context.Context, sess *domain.Session, id int64) (*domain.MediaFile, error) {
	res, err := c.do(ctx, sess, http.MethodGet, "/api/archivos", idQuery("id_archivo", id), nil)
	if err != nil {
		return nil, fmt.Errorf("get file %d: %w", id, err)
	}
	var f domain.MediaFile
	if err := res.body.field("archivo", &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *Client) DeleteFile(ctx context.Context, sess *domain.Session, id int64) error {
	if _, err := c.do(ctx, sess, http.MethodDelete, "/api/archivos", idQuery("id_archivo", id), nil); err != nil {
		return fmt.Errorf("delete file %d: %w", id, err)
	}
	return nil
}

// ============================================================================
// Associations
// ============================================================================

func (c *Client) ListDiagramMedia(ctx context.Context, sess *domain.Session, diagramID int64) ([]*domain.DiagramMedia, error) {
	res, err := c.do(ctx, sess, http.MethodGet, "/api/diagrama-multimedia", idQuery("id_diagrama", diagramID), nil)
	if err != nil {
		return nil, fmt.Errorf("list media of diagram %d: %w", diagramID, err)
	}
	var items []*domain.DiagramMedia
	if err := res.body.field("multimedia", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddDiagramMedia(ctx context.Context, sess *domain.Session, m *domain.DiagramMedia) error {
	body := map[string]any{
		"id_diagrama": m.DiagramID,
		"id_archivo":  m.FileID,
		"descripcion": m.Description,
		"orden":       m.Order,
	}
	if _, err := c.do(ctx, sess, http.MethodPost, "/api/diagrama-multimedia", nil, body); err != nil {
		return fmt.Errorf("attach file %d to diagram %d: %w", m.FileID, m.DiagramID, err)
	}
	return nil
}

func (c *Client) RemoveDiagramMedia(ctx context.Context, sess *domain.Session, diagramID, fileID int64) error {
	q := pairQuery("id_diagrama", diagramID, fileID)
	if _, err := c.do(ctx, sess, http.MethodDelete, "/api/diagrama-multimedia", q, nil); err != nil {
		return fmt.Errorf("detach file %d from diagram %d: %w", fileID, diagramID, err)
	}
	return nil
}

func (c *Client) ListElementMedia(ctx context.Context, sess *domain.Session, elementID int64) ([]*domain.ElementMedia, error) {
	res, err := c.do(ctx, sess, http.MethodGet, "/api/elemento-multimedia", idQuery("id_elemento", elementID), nil)
	if err != nil {
		return nil, fmt.Errorf("list media of element %d: %w", elementID, err)
	}
	var items []*domain.ElementMedia
	if err := res.body.field("multimedia", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddElementMedia(ctx context.Context, sess *domain.Session, m *domain.ElementMedia) error {
	body := map[string]any{
		"id_elemento": m.ElementID,
		"id_archivo":  m.FileID,
		"tipo_uso":    m.Use,
	}
	if _, err := c.do(ctx, sess, http.MethodPost, "/api/elemento-multimedia", nil, body); err != nil {
		return fmt.Errorf("attach file %d to element %d: %w", m.FileID, m.ElementID, err)
	}
	return nil
}

func (c *Client) RemoveElementMedia(ctx context.Context, sess *domain.Session, elementID, fileID int64) error {
	q := pairQuery("id_elemento", elementID, fileID)
	if _, err := c.do(ctx, sess, http.MethodDelete, "/api/elemento-multimedia", q, nil); err != nil {
		return fmt.Errorf("detach file %d from element %d: %w", fileID, elementID, err)
	}
	return nil
}

func pairQuery(ownerKey string, ownerID, fileID int64) url.Values {
	return url.Values{
		ownerKey:     []string{strconv.FormatInt(ownerID, 10)},
		"id_archivo": []string{strconv.FormatInt(fileID, 10)},
	}
}
