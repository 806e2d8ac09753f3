package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"diagram-editor-service/internal/core/domain"
	"diagram-editor-service/internal/core/ports/output"
)

type MessageKind string

const (
	MessageError   MessageKind = "error"
	MessageSuccess MessageKind = "success"
)

// Message is the dismissible banner of an editor.
type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// Selection holds at most one of ElementID and ConnectionID.
type Selection struct {
	ElementID    int64 `json:"id_elemento,omitempty"`
	ConnectionID int64 `json:"id_conexion,omitempty"`
}

// CanvasState is a copy of everything an editor view renders.
type CanvasState struct {
	Diagram        *domain.Diagram      `json:"diagrama"`
	Elements       []*domain.Element    `json:"elementos"`
	Connections    []*domain.Connection `json:"conexiones"`
	Selection      Selection            `json:"seleccion"`
	ElementForm    *domain.Element      `json:"elemento_form,omitempty"`
	ConnectionForm *domain.Connection   `json:"conexion_form,omitempty"`
	Candidates     []int64              `json:"candidatos"`
	CanConnect     bool                 `json:"puede_conectar"`
	Drag           DragState            `json:"arrastre"`
	Message        *Message             `json:"mensaje,omitempty"`
}

// patch is a local position not yet confirmed by the backend.
type patch struct {
	x, y int
	seq  uint64
}

// Canvas is the interactive controller of one diagram for one session. It
// caches the diagram's elements and connections, turns pointer gestures into
// store calls and reloads from the store after most mutations. The lock is
// never held across a store call.
type Canvas struct {
	store     ports.DiagramStore
	sess      *domain.Session
	diagramID int64

	mu          sync.Mutex
	diagram     *domain.Diagram
	elements    []*domain.Element
	connections []*domain.Connection
	drag        DragState
	selection   Selection
	candidates  []int64
	pending     map[int64]patch
	seq         uint64
	message     *Message
}

func NewCanvas(store ports.DiagramStore, sess *domain.Session, diagramID int64) *Canvas {
	return &Canvas{
		store:     store,
		sess:      sess,
		diagramID: diagramID,
		drag:      idleDrag(),
		pending:   make(map[int64]patch),
	}
}

func (c *Canvas) DiagramID() int64 {
	return c.diagramID
}

// ============================================================================
// Loading
// ============================================================================

// Load fetches the diagram, its elements and its connections one after the
// other. A failed step stops the sequence and leaves later state as it was.
func (c *Canvas) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.message != nil && c.message.Kind == MessageError {
		c.message = nil
	}
	c.mu.Unlock()

	d, err := c.store.GetDiagram(ctx, c.sess, c.diagramID)
	if err != nil {
		return c.fail(err, "Could not load the diagram.", "load diagram")
	}
	c.mu.Lock()
	cp := *d
	c.diagram = &cp
	c.mu.Unlock()

	elements, err := c.store.ListElements(ctx, c.sess, c.diagramID)
	if err != nil {
		return c.fail(err, "Could not load the diagram.", "list elements")
	}
	c.mu.Lock()
	c.setElements(elements)
	c.mu.Unlock()

	connections, err := c.store.ListConnections(ctx, c.sess, c.diagramID)
	if err != nil {
		return c.fail(err, "Could not load the diagram.", "list connections")
	}
	c.mu.Lock()
	c.setConnections(connections)
	c.mu.Unlock()
	return nil
}

// setElements replaces the element cache, keeping unconfirmed local
// positions. Caller holds mu.
func (c *Canvas) setElements(elements []*domain.Element) {
	c.elements = make([]*domain.Element, 0, len(elements))
	for _, e := range elements {
		cp := *e
		if p, ok := c.pending[cp.ID]; ok {
			cp.X, cp.Y = p.x, p.y
		}
		c.elements = append(c.elements, &cp)
	}

	kept := c.candidates[:0]
	for _, id := range c.candidates {
		if c.findElement(id) != nil {
			kept = append(kept, id)
		}
	}
	c.candidates = kept

	if c.selection.ElementID != 0 && c.findElement(c.selection.ElementID) == nil {
		c.selection.ElementID = 0
	}
	if c.drag.Dragging() && c.findElement(c.drag.ElementID) == nil {
		delete(c.pending, c.drag.ElementID)
		c.drag = idleDrag()
	}
}

// Caller holds mu.
func (c *Canvas) setConnections(connections []*domain.Connection) {
	c.connections = make([]*domain.Connection, 0, len(connections))
	for _, conn := range connections {
		cp := *conn
		c.connections = append(c.connections, &cp)
	}
	if c.selection.ConnectionID != 0 && c.findConnection(c.selection.ConnectionID) == nil {
		c.selection.ConnectionID = 0
	}
}

// ============================================================================
// Drop To Create
// ============================================================================

// Drop creates an element of the type named by tag where the pointer was
// released. Empty, relation and unknown tags are ignored and return nil.
func (c *Canvas) Drop(ctx context.Context, tag string, p Pointer) (*domain.Element, error) {
	typ, ok := domain.ParseElementType(tag)
	if !ok {
		log.WithField("tag", tag).Debug("ignoring drop without an element type")
		return nil, nil
	}

	c.mu.Lock()
	loaded := c.diagram != nil
	c.mu.Unlock()
	if !loaded {
		return nil, domain.ErrDiagramNotLoaded
	}

	x, y := clampedPosition(p.Canvas())
	size := typ.DefaultSize()
	e := &domain.Element{
		DiagramID: c.diagramID,
		Type:      typ,
		X:         x,
		Y:         y,
		Width:     size.Width,
		Height:    size.Height,
	}
	id, err := c.store.CreateElement(ctx, c.sess, e)
	if err != nil {
		return nil, c.fail(err, "Could not create the element.", "create element")
	}
	e.ID = id
	return e, c.Load(ctx)
}

// ============================================================================
// Pointer Drag
// ============================================================================

// Press starts dragging elementID and selects it.
func (c *Canvas) Press(elementID int64, p Pointer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.findElement(elementID)
	if e == nil {
		return domain.ErrElementNotFound
	}
	if c.drag.Dragging() && c.drag.ElementID != elementID {
		delete(c.pending, c.drag.ElementID)
	}
	c.drag = c.drag.press(elementID, p.Canvas(), domain.Point{X: float64(e.X), Y: float64(e.Y)})
	c.selection = Selection{ElementID: elementID}
	c.seq++
	c.pending[elementID] = patch{x: e.X, y: e.Y, seq: c.seq}
	return nil
}

// Move repositions the dragged element in the local cache only. It reports
// false when no drag is active.
func (c *Canvas) Move(p Pointer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.drag.Dragging() {
		return false
	}
	e := c.findElement(c.drag.ElementID)
	if e == nil {
		return false
	}
	e.X, e.Y = c.drag.target(p.Canvas())
	c.pending[e.ID] = patch{x: e.X, y: e.Y, seq: c.pending[e.ID].seq}
	return true
}

// Release ends the drag and saves the element's latest local position with
// a single update. The local position stays even if the save fails.
func (c *Canvas) Release(ctx context.Context) error {
	c.mu.Lock()
	if !c.drag.Dragging() {
		c.mu.Unlock()
		return nil
	}
	id := c.drag.ElementID
	c.drag = idleDrag()
	e := c.findElement(id)
	if e == nil {
		delete(c.pending, id)
		c.mu.Unlock()
		return nil
	}
	snapshot := *e
	seq := c.pending[id].seq
	c.mu.Unlock()

	err := c.store.UpdateElement(ctx, c.sess, &snapshot)

	c.mu.Lock()
	if p, ok := c.pending[id]; ok && p.seq == seq {
		delete(c.pending, id)
	}
	c.mu.Unlock()

	if err != nil {
		return c.fail(err, "Could not save the position.", "save element position")
	}
	return nil
}

// CancelDrag abandons an active drag without saving.
func (c *Canvas) CancelDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drag.Dragging() {
		delete(c.pending, c.drag.ElementID)
		c.drag = idleDrag()
	}
}

// ============================================================================
// Selection
// ============================================================================

// SelectElement selects an element and returns its edit form. An unknown id
// clears the selection.
func (c *Canvas) SelectElement(id int64) (*domain.Element, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selection = Selection{}
	e := c.findElement(id)
	if e == nil {
		return nil, domain.ErrElementNotFound
	}
	c.selection.ElementID = id
	form := *e
	return &form, nil
}

// SelectConnection selects a connection and returns its edit form. An
// unknown id clears the selection.
func (c *Canvas) SelectConnection(id int64) (*domain.Connection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selection = Selection{}
	conn := c.findConnection(id)
	if conn == nil {
		return nil, domain.ErrConnectionNotFound
	}
	c.selection.ConnectionID = id
	form := *conn
	return &form, nil
}

func (c *Canvas) ClearSelection() {
	c.mu.Lock()
	c.selection = Selection{}
	c.mu.Unlock()
}

func (c *Canvas) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

// ============================================================================
// Property Forms
// ============================================================================

// SaveElement validates and stores an element form, then reloads.
func (c *Canvas) SaveElement(ctx context.Context, form *domain.Element) error {
	if err := domain.ValidateElement(form); err != nil {
		return c.fail(err, "", "validate element")
	}
	e := *form
	e.DiagramID = c.diagramID
	e.StyleJSON = domain.NormalizeBlob(trimBlob(e.StyleJSON))
	e.MetaJSON = domain.NormalizeBlob(trimBlob(e.MetaJSON))
	if err := c.store.UpdateElement(ctx, c.sess, &e); err != nil {
		return c.fail(err, "Could not update the element.", "update element")
	}
	c.succeed("Element updated.")
	return c.Load(ctx)
}

// SaveConnection validates and stores a connection form, then reloads.
func (c *Canvas) SaveConnection(ctx context.Context, form *domain.Connection) error {
	if err := domain.ValidateConnection(form); err != nil {
		return c.fail(err, "", "validate connection")
	}
	conn := *form
	conn.DiagramID = c.diagramID
	conn.Label = optionalLabel(form.LabelText())
	conn.PointsJSON = domain.NormalizeBlob(trimBlob(conn.PointsJSON))
	conn.StyleJSON = domain.NormalizeBlob(trimBlob(conn.StyleJSON))
	if err := c.store.UpdateConnection(ctx, c.sess, &conn); err != nil {
		return c.fail(err, "Could not update the connection.", "update connection")
	}
	c.succeed("Connection updated.")
	return c.Load(ctx)
}

// SaveDiagram validates and stores the diagram form. The cached diagram
// takes the form's values on success.
func (c *Canvas) SaveDiagram(ctx context.Context, form *domain.Diagram) error {
	c.mu.Lock()
	loaded := c.diagram != nil
	c.mu.Unlock()
	if !loaded {
		return domain.ErrDiagramNotLoaded
	}
	if err := domain.ValidateDiagram(form); err != nil {
		return c.fail(err, "", "validate diagram")
	}
	d := *form
	d.ID = c.diagramID
	d.ConfigJSON = domain.NormalizeBlob(d.ConfigJSON)
	if err := c.store.UpdateDiagram(ctx, c.sess, &d); err != nil {
		return c.fail(err, "Could not update the diagram.", "update diagram")
	}

	c.mu.Lock()
	if c.diagram != nil {
		d.UserID = c.diagram.UserID
		d.CreatedAt = c.diagram.CreatedAt
		d.UpdatedAt = c.diagram.UpdatedAt
	}
	c.diagram = &d
	c.message = &Message{Kind: MessageSuccess, Text: "Diagram updated."}
	c.mu.Unlock()
	return nil
}

// ============================================================================
// Connection Building
// ============================================================================

// ToggleCandidate adds or removes an element from the ordered candidate set.
// With two candidates already chosen, adding a third is a no-op.
func (c *Canvas) ToggleCandidate(elementID int64) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.findElement(elementID) == nil {
		return c.candidatesCopy(), domain.ErrElementNotFound
	}
	for i, id := range c.candidates {
		if id == elementID {
			c.candidates = append(c.candidates[:i], c.candidates[i+1:]...)
			return c.candidatesCopy(), nil
		}
	}
	if len(c.candidates) < 2 {
		c.candidates = append(c.candidates, elementID)
	}
	return c.candidatesCopy(), nil
}

func (c *Canvas) Candidates() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.candidatesCopy()
}

// CanConnect reports whether exactly two candidates are chosen.
func (c *Canvas) CanConnect() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.candidates) == 2
}

// Connect links the first candidate to the second. An empty type means
// association; a blank label means none.
func (c *Canvas) Connect(ctx context.Context, typ domain.ConnectionType, label string) (*domain.Connection, error) {
	c.mu.Lock()
	if len(c.candidates) != 2 {
		c.mu.Unlock()
		return nil, c.fail(domain.ErrConnectNeedsTwo, "", "connect")
	}
	if c.diagram == nil {
		c.mu.Unlock()
		return nil, domain.ErrDiagramNotLoaded
	}
	source, target := c.candidates[0], c.candidates[1]
	c.mu.Unlock()

	if typ == "" {
		typ = domain.ConnectionTypeAssociation
	}
	if !typ.Valid() {
		return nil, c.fail(domain.ErrInvalidConnectionType, "", "connect")
	}

	conn := &domain.Connection{
		DiagramID: c.diagramID,
		SourceID:  source,
		TargetID:  target,
		Type:      typ,
		Label:     optionalLabel(label),
	}
	id, err := c.store.CreateConnection(ctx, c.sess, conn)
	if err != nil {
		return nil, c.fail(err, "Could not create the connection.", "create connection")
	}
	conn.ID = id

	c.mu.Lock()
	c.candidates = nil
	c.mu.Unlock()
	c.succeed("Connection created.")
	return conn, c.Load(ctx)
}

// ============================================================================
// Delete
// ============================================================================

// DeleteElement removes an element once confirmed, then reloads.
func (c *Canvas) DeleteElement(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	if err := c.store.DeleteElement(ctx, c.sess, id); err != nil {
		return c.fail(err, "Could not delete the element.", "delete element")
	}

	c.mu.Lock()
	if c.selection.ElementID == id {
		c.selection.ElementID = 0
	}
	if c.drag.Dragging() && c.drag.ElementID == id {
		c.drag = idleDrag()
	}
	delete(c.pending, id)
	c.mu.Unlock()

	c.succeed("Element deleted.")
	return c.Load(ctx)
}

// DeleteConnection removes a connection once confirmed, then reloads.
func (c *Canvas) DeleteConnection(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	if err := c.store.DeleteConnection(ctx, c.sess, id); err != nil {
		return c.fail(err, "Could not delete the connection.", "delete connection")
	}

	c.mu.Lock()
	if c.selection.ConnectionID == id {
		c.selection.ConnectionID = 0
	}
	c.mu.Unlock()

	c.succeed("Connection deleted.")
	return c.Load(ctx)
}

// ============================================================================
// View
// ============================================================================

// Scene resolves the cached diagram into drawable shapes and links.
func (c *Canvas) Scene() *domain.Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.BuildScene(c.diagram, c.elements, c.connections)
}

// State returns a copy of the editor state.
func (c *Canvas) State() CanvasState {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := CanvasState{
		Elements:    make([]*domain.Element, 0, len(c.elements)),
		Connections: make([]*domain.Connection, 0, len(c.connections)),
		Selection:   c.selection,
		Candidates:  c.candidatesCopy(),
		CanConnect:  len(c.candidates) == 2,
		Drag:        c.drag,
	}
	if c.diagram != nil {
		d := *c.diagram
		st.Diagram = &d
	}
	for _, e := range c.elements {
		cp := *e
		st.Elements = append(st.Elements, &cp)
		if e.ID == c.selection.ElementID {
			st.ElementForm = &cp
		}
	}
	for _, conn := range c.connections {
		cp := *conn
		st.Connections = append(st.Connections, &cp)
		if conn.ID == c.selection.ConnectionID {
			st.ConnectionForm = &cp
		}
	}
	if c.message != nil {
		m := *c.message
		st.Message = &m
	}
	return st
}

func (c *Canvas) Message() *Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.message == nil {
		return nil
	}
	m := *c.message
	return &m
}

func (c *Canvas) DismissMessage() {
	c.mu.Lock()
	c.message = nil
	c.mu.Unlock()
}

// ============================================================================
// Helpers
// ============================================================================

// fail records err as the banner and returns it wrapped with op.
func (c *Canvas) fail(err error, fallback, op string) error {
	text := domain.UserMessage(err, fallback)
	if text == "" {
		text = err.Error()
	}
	log.WithError(err).WithFields(log.Fields{
		"diagram_id": c.diagramID,
		"op":         op,
	}).Warn("canvas operation failed")

	c.mu.Lock()
	c.message = &Message{Kind: MessageError, Text: text}
	c.mu.Unlock()
	return fmt.Errorf("%s: %w", op, err)
}

func (c *Canvas) succeed(text string) {
	c.mu.Lock()
	c.message = &Message{Kind: MessageSuccess, Text: text}
	c.mu.Unlock()
}

// Element returns a copy of the cached element with the given id.
func (c *Canvas) Element(id int64) (*domain.Element, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.findElement(id)
	if e == nil {
		return nil, false
	}
	cp := *e
	return &cp, true
}

// Caller holds mu.
func (c *Canvas) findElement(id int64) *domain.Element {
	for _, e := range c.elements {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Caller holds mu.
func (c *Canvas) findConnection(id int64) *domain.Connection {
	for _, conn := range c.connections {
		if conn.ID == id {
			return conn
		}
	}
	return nil
}

// Caller holds mu.
func (c *Canvas) candidatesCopy() []int64 {
	out := make([]int64, len(c.candidates))
	copy(out, c.candidates)
	return out
}

func optionalLabel(label string) *string {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	return &label
}

func trimBlob(blob *string) *string {
	if blob == nil {
		return nil
	}
	s := strings.TrimSpace(*blob)
	return &s
}
