package services

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"diagram-editor-service/internal/core/domain"
	"diagram-editor-service/internal/core/ports/output"
)

type editorKey struct {
	sessionID string
	diagramID int64
}

type editorEntry struct {
	canvas   *Canvas
	lastUsed time.Time
}

// EditorRegistry keeps one Canvas per browser session and diagram.
type EditorRegistry struct {
	store ports.DiagramStore
	now   func() time.Time

	mu      sync.Mutex
	editors map[editorKey]*editorEntry
}

func NewEditorRegistry(store ports.DiagramStore) *EditorRegistry {
	return &EditorRegistry{
		store:   store,
		now:     time.Now,
		editors: make(map[editorKey]*editorEntry),
	}
}

// Open returns the session's editor for diagramID, creating an unloaded one
// if none exists. An editor opened for another user is replaced. The second
// result reports whether it was created.
func (r *EditorRegistry) Open(sessionID string, sess *domain.Session, diagramID int64) (*Canvas, bool, error) {
	if diagramID <= 0 {
		return nil, false, domain.ErrInvalidDiagramID
	}
	if sess == nil {
		return nil, false, domain.ErrSessionNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := editorKey{sessionID: sessionID, diagramID: diagramID}
	if e, ok := r.editors[key]; ok {
		if e.canvas.sess.UserID == sess.UserID {
			e.lastUsed = r.now()
			return e.canvas, false, nil
		}
		log.WithFields(log.Fields{
			"diagram_id": diagramID,
			"user_id":    sess.UserID,
		}).Warn("replacing editor opened by another user")
		e.canvas.CancelDrag()
	}
	c := NewCanvas(r.store, sess, diagramID)
	r.editors[key] = &editorEntry{canvas: c, lastUsed: r.now()}
	return c, true, nil
}

func (r *EditorRegistry) Get(sessionID string, diagramID int64) (*Canvas, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.editors[editorKey{sessionID: sessionID, diagramID: diagramID}]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.canvas, true
}

// Close drops one editor, abandoning any drag in progress.
func (r *EditorRegistry) Close(sessionID string, diagramID int64) {
	r.mu.Lock()
	key := editorKey{sessionID: sessionID, diagramID: diagramID}
	e, ok := r.editors[key]
	delete(r.editors, key)
	r.mu.Unlock()

	if ok {
		e.canvas.CancelDrag()
	}
}

// CloseSession drops every editor owned by sessionID and returns how many
// were open.
func (r *EditorRegistry) CloseSession(sessionID string) int {
	n := r.closeWhere(func(key editorKey, _ *editorEntry) bool {
		return key.sessionID == sessionID
	})
	if n > 0 {
		log.WithField("editors", n).Debug("closed session editors")
	}
	return n
}

// HasSession reports whether sessionID has any editor open.
func (r *EditorRegistry) HasSession(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.editors {
		if key.sessionID == sessionID {
			return true
		}
	}
	return false
}

// CloseIdle drops every editor not used for maxIdle and returns how many
// were closed.
func (r *EditorRegistry) CloseIdle(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)
	n := r.closeWhere(func(_ editorKey, e *editorEntry) bool {
		return e.lastUsed.Before(cutoff)
	})
	if n > 0 {
		log.WithField("editors", n).Info("closed idle editors")
	}
	return n
}

func (r *EditorRegistry) closeWhere(match func(editorKey, *editorEntry) bool) int {
	r.mu.Lock()
	var closed []*Canvas
	for key, e := range r.editors {
		if match(key, e) {
			closed = append(closed, e.canvas)
			delete(r.editors, key)
		}
	}
	r.mu.Unlock()

	for _, c := range closed {
		c.CancelDrag()
	}
	return len(closed)
}

func (r *EditorRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.editors)
}
