package backend

import (
	"context"
	"fmt"
	"net/http"

	"diagram-editor-service/internal/core/domain"
)

// ============================================================================
// Diagrams
// ============================================================================

func (c *Client) ListDiagrams(ctx context.Context, sess *domain.Session) ([]*domain.Diagram, error) {
	res, err := c.do(ctx, sess, http.MethodGet, "/api/diagramas", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	var diagrams []*domain.Diagram
	if err := res.body.field("diagramas", &diagrams); err != nil {
		return nil, err
	}
	return diagrams, nil
}

func (c *Client) GetDiagram(ctx context.Context, sess *domain.Session, id int64) (*domain.Diagram, error) {
	res, err := c.do(ctx, sess, http.MethodGet, "/api/diagramas", idQuery("id_diagrama", id), nil)
	if err != nil {
		return nil, fmt.Errorf("get diagram %d: %w", id, err)
	}
	var d domain.Diagram
	if err := res.body.field("diagrama", &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) CreateDiagram(ctx context.Context, sess *domain.Session, d *domain.Diagram) (int64, error) {
	res, err := c.do(ctx, sess, http.MethodPost, "/api/diagramas", nil, d)
	if err != nil {
		return 0, fmt.Errorf("create diagram: %w", err)
	}
	return res.body.id("id_diagrama")
}

func (c *Client) UpdateDiagram(ctx context.Context, sess *domain.Session, d *domain.Diagram) error {
	if _, err := c.do(ctx, sess, http.MethodPut, "/api/diagramas", nil, d); err != nil {
		return fmt.Errorf("update diagram %d: %w", d.ID, err)
	}
	return nil
}

func (c *Client) DeleteDiagram(ctx context.Context, sess *domain.Session, id int64) error {
	if _, err := c.do(ctx, sess, http.MethodDelete, "/api/diagramas", idQuery("id_diagrama", id), nil); err != nil {
		return fmt.Errorf("delete diagram %d: %w", id, err)
	}
	return nil
}

// ============================================================================
// Elements
// ============================================================================

func (c *Client) ListElements(ctx context.Context, sess *domain.Session, diagramID int64) ([]*domain.Element, error) {
	res, err := c.do(ctx, sess, http.MethodGet, "/api/elementos", idQuery("id_diagrama", diagramID), nil)
	if err != nil {
		return nil, fmt.Errorf("list elements of diagram %d: %w", diagramID, err)
	}
	var elements []*domain.Element
	if err := res.body.field("elementos", &elements); err != nil {
		return nil, err
	}
	return elements, nil
}

func (c *Client) CreateElement(ctx context.Context, sess *domain.Session, e *domain.Element) (int64, error) {
	res, err := c.do(ctx, sess, http.MethodPost, "/api/elementos", nil, e)
	if err != nil {
		return 0, fmt.Errorf("create element: %w", err)
	}
	return res.body.id("id_elemento")
}

func (c *Client) UpdateElement(ctx context.Context, sess *domain.Session, e *domain.Element) error {
	if _, err := c.do(ctx, sess, http.MethodPut, "/api/elementos", nil, e); err != nil {
		return fmt.Errorf("update element %d: %w", e.ID, err)
	}
	return nil
}

func (c *Client) DeleteElement(ctx context.Context, sess *domain.Session, id int64) error {
	if _, err := c.do(ctx, sess, http.MethodDelete, "/api/elementos", idQuery("id_elemento", id), nil); err != nil {
		return fmt.Errorf("delete element %d: %w", id, err)
	}
	return nil
}

// ============================================================================
// Connections
// ============================================================================

func (c *Client) ListConnections(ctx context.Context, sess *domain.Session, diagramID int64) ([]*domain.Connection, error) {
	res, err := c.do(ctx, sess, http.MethodGet, "/api/conexiones", idQuery("id_diagrama", diagramID), nil)
	if err != nil {
		return nil, fmt.Errorf("list connections of diagram %d: %w", diagramID, err)
	}
	var connections []*domain.Connection
	if err := res.body.field("conexiones", &connections); err != nil {
		return nil, err
	}
	return connections, nil
}

func (c *Client) CreateConnection(ctx context.Context, sess *domain.Session, conn *domain.Connection) (int64, error) {
	res, err := c.do(ctx, sess, http.MethodPost, "/api/conexiones", nil, conn)
	if err != nil {
		return 0, fmt.Errorf("create connection: %w", err)
	}
	return res.body.id("id_conexion")
}

func (c *Client) UpdateConnection(ctx context.Context, sess *domain.Session, conn *domain.Connection) error {
	if _, err := c.do(ctx, sess, http.MethodPut, "/api/conexiones", nil, conn); err != nil {
		return fmt.Errorf("update connection %d: %w", conn.ID, err)
	}
	return nil
}

func (c *Client) DeleteConnection(ctx context.Context, sess *domain.Session, id int64) error {
	if _, err := c.do(ctx, sess, http.MethodDelete, "/api/conexiones", idQuery("id_conexion", id), nil); err != nil {
		return fmt.Errorf("delete connection %d: %w", id, err)
	}
	return nil
}
