package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"diagram-editor-service/internal/core/domain"
	"diagram-editor-service/internal/testutil"
)

const testDiagramID int64 = 7

var testSession = &domain.Session{UserID: 1, RoleID: 2, Username: "ana", RoleName: "EDITOR"}

func testDiagram() *domain.Diagram {
	return &domain.Diagram{
		ID:           testDiagramID,
		UserID:       1,
		Name:         "Library",
		Status:       domain.DiagramStatusActive,
		CanvasWidth:  1200,
		CanvasHeight: 800,
	}
}

func testElements() []*domain.Element {
	return []*domain.Element{
		{ID: 5, DiagramID: testDiagramID, Type: domain.ElementTypeActor, X: 100, Y: 100, Width: 60, Height: 100},
		{ID: 9, DiagramID: testDiagramID, Type: domain.ElementTypeUseCase, X: 300, Y: 120, Width: 140, Height: 70},
		{ID: 11, DiagramID: testDiagramID, Type: domain.ElementTypeNote, X: 500, Y: 400, Width: 160, Height: 100},
	}
}

func testConnections() []*domain.Connection {
	return []*domain.Connection{
		{ID: 20, DiagramID: testDiagramID, SourceID: 5, TargetID: 9, Type: domain.ConnectionTypeAssociation},
	}
}

// newLoadedCanvas returns a canvas after one successful load. Each list call
// of that load is consumed, so tests that reload register their own answers.
func newLoadedCanvas(t *testing.T, store *testutil.MockDiagramStore, elements []*domain.Element, connections []*domain.Connection) *Canvas {
	t.Helper()
	store.On("GetDiagram", mock.Anything, mock.Anything, testDiagramID).Return(testDiagram(), nil)
	store.On("ListElements", mock.Anything, mock.Anything, testDiagramID).Return(elements, nil).Once()
	store.On("ListConnections", mock.Anything, mock.Anything, testDiagramID).Return(connections, nil).Once()

	c := NewCanvas(store, testSession, testDiagramID)
	require.NoError(t, c.Load(context.Background()))
	return c
}

func expectReload(store *testutil.MockDiagramStore, elements []*domain.Element, connections []*domain.Connection) {
	store.On("ListElements", mock.Anything, mock.Anything, testDiagramID).Return(elements, nil).Once()
	store.On("ListConnections", mock.Anything, mock.Anything, testDiagramID).Return(connections, nil).Once()
}

func at(x, y float64) Pointer {
	return Pointer{ClientX: x + 40, ClientY: y + 60, OriginX: 40, OriginY: 60}
}

// ============================================================================
// Load Tests
// ============================================================================

func TestCanvas_Load(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), testConnections())

	st := c.State()
	assert.Equal(t, "Library", st.Diagram.Name)
	assert.Len(t, st.Elements, 3)
	assert.Len(t, st.Connections, 1)
	assert.Nil(t, st.Message)
	store.AssertExpectations(t)
}

func TestCanvas_Load_DiagramFailureStopsSequence(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	store.On("GetDiagram", mock.Anything, mock.Anything, testDiagramID).
		Return(nil, fmt.Errorf("get diagram: %w", domain.ErrBackendUnavailable))

	c := NewCanvas(store, testSession, testDiagramID)
	err := c.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.Equal(t, &Message{Kind: MessageError, Text: "Could not load the diagram."}, c.Message())
	assert.Nil(t, c.State().Diagram)
	store.AssertNotCalled(t, "ListElements", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "ListConnections", mock.Anything, mock.Anything, mock.Anything)
}

func TestCanvas_Load_PartialFailureKeepsLaterState(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), testConnections())

	store.On("ListElements", mock.Anything, mock.Anything, testDiagramID).
		Return(nil, &domain.RemoteError{Status: 500, Message: "Error al listar elementos"}).Once()

	err := c.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrBackendRejected)
	st := c.State()
	assert.Len(t, st.Elements, 3)
	assert.Len(t, st.Connections, 1)
	assert.Equal(t, "Error al listar elementos", st.Message.Text)
	store.AssertNumberOfCalls(t, "ListConnections", 1)
}

func TestCanvas_Load_PrunesCandidates(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)

	_, err := c.ToggleCandidate(5)
	require.NoError(t, err)
	_, err = c.ToggleCandidate(11)
	require.NoError(t, err)

	expectReload(store, testElements()[:2], nil)
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, []int64{5}, c.Candidates())
	assert.False(t, c.CanConnect())
}

// ============================================================================
// Drop Tests
// ============================================================================

func TestCanvas_Drop_IgnoresNonElementTags(t *testing.T) {
	for _, tag := range []string{"", domain.RelationPlaceholder, "CLASE", "actor"} {
		t.Run(fmt.Sprintf("tag %q", tag), func(t *testing.T) {
			store := new(testutil.MockDiagramStore)
			c := newLoadedCanvas(t, store, nil, nil)

			e, err := c.Drop(context.Background(), tag, at(10, 10))

			assert.NoError(t, err)
			assert.Nil(t, e)
			store.AssertNotCalled(t, "CreateElement", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCanvas_Drop_ActorAtCanvasOrigin(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, nil, nil)

	store.On("CreateElement", mock.Anything, mock.Anything, mock.MatchedBy(func(e *domain.Element) bool {
		return e.Type == domain.ElementTypeActor && e.X == 0 && e.Y == 0 &&
			e.Width == 60 && e.Height == 100 && e.Label == "" && e.DiagramID == testDiagramID &&
			e.StyleJSON == nil && e.MetaJSON == nil
	})).Return(int64(42), nil)
	created := &domain.Element{ID: 42, DiagramID: testDiagramID, Type: domain.ElementTypeActor, Width: 60, Height: 100}
	expectReload(store, []*domain.Element{created}, nil)

	e, err := c.Drop(context.Background(), "ACTOR", Pointer{ClientX: 250, ClientY: 180, OriginX: 250, OriginY: 180})

	require.NoError(t, err)
	assert.Equal(t, int64(42), e.ID)
	assert.Equal(t, 0, e.X)
	assert.Equal(t, 0, e.Y)
	assert.Len(t, c.State().Elements, 1)
	store.AssertExpectations(t)
}

func TestCanvas_Drop_ClampsAndRounds(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, nil, nil)

	store.On("CreateElement", mock.Anything, mock.Anything, mock.MatchedBy(func(e *domain.Element) bool {
		return e.X == 0 && e.Y == 31 && e.Width == 160 && e.Height == 100
	})).Return(int64(1), nil)
	expectReload(store, nil, nil)

	_, err := c.Drop(context.Background(), "NOTA", Pointer{ClientX: 10, ClientY: 80.6, OriginX: 100, OriginY: 50})

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestCanvas_Drop_NotLoaded(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := NewCanvas(store, testSession, testDiagramID)

	_, err := c.Drop(context.Background(), "ACTOR", at(0, 0))

	assert.ErrorIs(t, err, domain.ErrDiagramNotLoaded)
	store.AssertNotCalled(t, "CreateElement", mock.Anything, mock.Anything, mock.Anything)
}

func TestCanvas_Drop_CreateFailure(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, nil, nil)
	store.On("CreateElement", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), fmt.Errorf("post: %w", domain.ErrBackendUnavailable))

	e, err := c.Drop(context.Background(), "TEXTO", at(20, 20))

	assert.Nil(t, e)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.Equal(t, "Could not create the element.", c.Message().Text)
	store.AssertNumberOfCalls(t, "ListElements", 1)
}

// ============================================================================
// Drag Tests
// ============================================================================

func TestCanvas_Drag_MovesLocallyAndSavesOnce(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)

	require.NoError(t, c.Press(5, at(110, 120)))
	assert.True(t, c.State().Drag.Dragging())
	assert.Equal(t, domain.Point{X: 10, Y: 20}, c.State().Drag.Offset)

	assert.True(t, c.Move(at(300, 50)))
	assert.True(t, c.Move(at(410.4, 519.6)))
	store.AssertNotCalled(t, "UpdateElement", mock.Anything, mock.Anything, mock.Anything)

	st := c.State()
	assert.Equal(t, 400, st.Elements[0].X)
	assert.Equal(t, 500, st.Elements[0].Y)

	store.On("UpdateElement", mock.Anything, mock.Anything, mock.MatchedBy(func(e *domain.Element) bool {
		return e.ID == 5 && e.X == 400 && e.Y == 500 && e.Width == 60
	})).Return(nil).Once()

	require.NoError(t, c.Release(context.Background()))

	assert.False(t, c.State().Drag.Dragging())
	store.AssertNumberOfCalls(t, "UpdateElement", 1)
}

func TestCanvas_Drag_ClampsToCanvas(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)

	require.NoError(t, c.Press(9, at(310, 130)))
	c.Move(at(-50, 3))

	st := c.State()
	assert.Equal(t, 0, st.Elements[1].X)
	assert.Equal(t, 0, st.Elements[1].Y)
}

func TestCanvas_Drag_IdleMoveAndReleaseAreNoOps(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)

	assert.False(t, c.Move(at(10, 10)))
	assert.NoError(t, c.Release(context.Background()))

	assert.Equal(t, 100, c.State().Elements[0].X)
	store.AssertNotCalled(t, "UpdateElement", mock.Anything, mock.Anything, mock.Anything)
}

func TestCanvas_Drag_PressSelectsElement(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), testConnections())

	_, err := c.SelectConnection(20)
	require.NoError(t, err)
	require.NoError(t, c.Press(9, at(300, 120)))

	assert.Equal(t, Selection{ElementID: 9}, c.Selection())
}

func TestCanvas_Drag_PressUnknownElement(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)

	assert.ErrorIs(t, c.Press(99, at(0, 0)), domain.ErrElementNotFound)
	assert.False(t, c.State().Drag.Dragging())
}

func TestCanvas_Drag_SaveFailureKeepsLocalPosition(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)

	require.NoError(t, c.Press(5, at(100, 100)))
	c.Move(at(150, 160))
	store.On("UpdateElement", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.RemoteError{Status: 500, Message: "No se pudo actualizar"})

	err := c.Release(context.Background())

	assert.Error(t, err)
	st := c.State()
	assert.Equal(t, 150, st.Elements[0].X)
	assert.Equal(t, 160, st.Elements[0].Y)
	assert.Equal(t, MessageError, st.Message.Kind)
	assert.False(t, st.Drag.Dragging())
}

func TestCanvas_Drag_ReloadDuringGestureKeepsLocalPosition(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)

	require.NoError(t, c.Press(5, at(100, 100)))
	c.Move(at(250, 260))

	expectReload(store, testElements(), nil)
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, 250, c.State().Elements[0].X)

	store.On("UpdateElement", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	require.NoError(t, c.Release(context.Background()))

	// Once the save has finished the store is authoritative again.
	expectReload(store, testElements(), nil)
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, 100, c.State().Elements[0].X)
}

func TestCanvas_CancelDrag(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)

	require.NoError(t, c.Press(5, at(100, 100)))
	c.CancelDrag()

	assert.False(t, c.Move(at(200, 200)))
	assert.NoError(t, c.Release(context.Background()))
	store.AssertNotCalled(t, "UpdateElement", mock.Anything, mock.Anything, mock.Anything)
}

// ============================================================================
// Selection Tests
// ============================================================================

func TestCanvas_Selection_MutuallyExclusive(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), testConnections())

	form, err := c.SelectElement(9)
	require.NoError(t, err)
	assert.Equal(t, domain.ElementTypeUseCase, form.Type)
	assert.Equal(t, Selection{ElementID: 9}, c.Selection())

	conn, err := c.SelectConnection(20)
	require.NoError(t, err)
	assert.Equal(t, int64(5), conn.SourceID)
	assert.Equal(t, Selection{ConnectionID: 20}, c.Selection())

	_, err = c.SelectElement(5)
	require.NoError(t, err)
	st := c.State()
	assert.Equal(t, Selection{ElementID: 5}, st.Selection)
	assert.NotNil(t, st.ElementForm)
	assert.Nil(t, st.ConnectionForm)
}

func TestCanvas_Selection_UnknownClears(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), testConnections())

	_, err := c.SelectElement(5)
	require.NoError(t, err)
	_, err = c.SelectConnection(404)

	assert.ErrorIs(t, err, domain.ErrConnectionNotFound)
	assert.Equal(t, Selection{}, c.Selection())
}

func TestCanvas_Selection_FormIsACopy(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)

	form, err := c.SelectElement(5)
	require.NoError(t, err)
	form.Label = "edited"

	assert.Equal(t, "", c.State().Elements[0].Label)
}

// ============================================================================
// Property Form Tests
// ============================================================================

func TestCanvas_SaveElement_InvalidBlobBlocksSave(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)

	form, err := c.SelectElement(5)
	require.NoError(t, err)
	style := `{"a":}`
	form.StyleJSON = &style

	err = c.SaveElement(context.Background(), form)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "estilo_json must be valid JSON", c.Message().Text)
	store.AssertNotCalled(t, "UpdateElement", mock.Anything, mock.Anything, mock.Anything)
}

func TestCanvas_SaveElement(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)

	form, err := c.SelectElement(5)
	require.NoError(t, err)
	form.Label = "Librarian"
	blank := "  "
	form.MetaJSON = &blank

	store.On("UpdateElement", mock.Anything, mock.Anything, mock.MatchedBy(func(e *domain.Element) bool {
		return e.ID == 5 && e.Label == "Librarian" && e.MetaJSON == nil
	})).Return(nil)
	updated := testElements()
	updated[0].Label = "Librarian"
	expectReload(store, updated, nil)

	require.NoError(t, c.SaveElement(context.Background(), form))

	assert.Equal(t, "Librarian", c.State().Elements[0].Label)
	assert.Equal(t, &Message{Kind: MessageSuccess, Text: "Element updated."}, c.Message())
	store.AssertExpectations(t)
}

func TestCanvas_SaveConnection_TrimsLabel(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), testConnections())

	form, err := c.SelectConnection(20)
	require.NoError(t, err)
	label := "  uses  "
	form.Label = &label
	form.Type = domain.ConnectionTypeInclude

	store.On("UpdateConnection", mock.Anything, mock.Anything, mock.MatchedBy(func(conn *domain.Connection) bool {
		return conn.Label != nil && *conn.Label == "uses" && conn.Type == domain.ConnectionTypeInclude
	})).Return(nil)
	expectReload(store, testElements(), testConnections())

	require.NoError(t, c.SaveConnection(context.Background(), form))
	store.AssertExpectations(t)
}

func TestCanvas_SaveDiagram(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, nil, nil)

	bad := testDiagram()
	bad.CanvasWidth = 100
	err := c.SaveDiagram(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrValidation)
	store.AssertNotCalled(t, "UpdateDiagram", mock.Anything, mock.Anything, mock.Anything)

	good := testDiagram()
	good.Name = "Library v2"
	store.On("UpdateDiagram", mock.Anything, mock.Anything, mock.MatchedBy(func(d *domain.Diagram) bool {
		return d.ID == testDiagramID && d.Name == "Library v2"
	})).Return(nil)

	require.NoError(t, c.SaveDiagram(context.Background(), good))
	assert.Equal(t, "Library v2", c.State().Diagram.Name)
	assert.Equal(t, MessageSuccess, c.Message().Kind)
}

// ============================================================================
// Connection Building Tests
// ============================================================================

func TestCanvas_ToggleCandidate(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)

	got, err := c.ToggleCandidate(5)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, got)
	assert.False(t, c.CanConnect())

	got, _ = c.ToggleCandidate(9)
	assert.Equal(t, []int64{5, 9}, got)
	assert.True(t, c.CanConnect())

	got, _ = c.ToggleCandidate(11)
	assert.Equal(t, []int64{5, 9}, got)

	got, _ = c.ToggleCandidate(5)
	assert.Equal(t, []int64{9}, got)

	_, err = c.ToggleCandidate(404)
	assert.ErrorIs(t, err, domain.ErrElementNotFound)
	assert.Equal(t, []int64{9}, c.Candidates())
}

func TestCanvas_Connect_RequiresTwoCandidates(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)
	_, _ = c.ToggleCandidate(5)

	conn, err := c.Connect(context.Background(), domain.ConnectionTypeAssociation, "")

	assert.Nil(t, conn)
	assert.ErrorIs(t, err, domain.ErrConnectNeedsTwo)
	assert.Equal(t, domain.ErrConnectNeedsTwo.Error(), c.Message().Text)
	store.AssertNotCalled(t, "CreateConnection", mock.Anything, mock.Anything, mock.Anything)
}

func TestCanvas_Connect_Generalization(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)
	_, _ = c.ToggleCandidate(5)
	_, _ = c.ToggleCandidate(9)

	store.On("CreateConnection", mock.Anything, mock.Anything, mock.MatchedBy(func(conn *domain.Connection) bool {
		return conn.SourceID == 5 && conn.TargetID == 9 &&
			conn.Type == domain.ConnectionTypeGeneralization && conn.Label == nil
	})).Return(int64(30), nil)
	saved := &domain.Connection{ID: 30, DiagramID: testDiagramID, SourceID: 5, TargetID: 9, Type: domain.ConnectionTypeGeneralization}
	expectReload(store, testElements(), []*domain.Connection{saved})

	conn, err := c.Connect(context.Background(), domain.ConnectionTypeGeneralization, "   ")

	require.NoError(t, err)
	assert.Equal(t, int64(30), conn.ID)
	assert.Empty(t, c.Candidates())

	scene := c.Scene()
	require.Len(t, scene.Links, 1)
	assert.Equal(t, domain.Point{X: 130, Y: 150}, scene.Links[0].From)
	assert.Equal(t, domain.Point{X: 370, Y: 155}, scene.Links[0].To)
	assert.Equal(t, "", scene.Links[0].Style.Dash)
	assert.Equal(t, domain.MarkerTriangle, scene.Links[0].Style.Marker)
	store.AssertExpectations(t)
}

func TestCanvas_Connect_DefaultsToAssociation(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)
	_, _ = c.ToggleCandidate(9)
	_, _ = c.ToggleCandidate(5)

	store.On("CreateConnection", mock.Anything, mock.Anything, mock.MatchedBy(func(conn *domain.Connection) bool {
		return conn.SourceID == 9 && conn.TargetID == 5 &&
			conn.Type == domain.ConnectionTypeAssociation && conn.Label != nil && *conn.Label == "borrows"
	})).Return(int64(31), nil)
	expectReload(store, testElements(), nil)

	_, err := c.Connect(context.Background(), "", " borrows ")

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestCanvas_Connect_FailureKeepsCandidates(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)
	_, _ = c.ToggleCandidate(5)
	_, _ = c.ToggleCandidate(9)
	store.On("CreateConnection", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), &domain.RemoteError{Status: 400, Message: "Tipo de conexion invalido"})

	_, err := c.Connect(context.Background(), domain.ConnectionTypeDependency, "")

	assert.True(t, errors.Is(err, domain.ErrBackendRejected))
	assert.Equal(t, []int64{5, 9}, c.Candidates())
	assert.Equal(t, "Tipo de conexion invalido", c.Message().Text)
}

// ============================================================================
// Delete Tests
// ============================================================================

func TestCanvas_DeleteElement_RequiresConfirmation(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), nil)

	err := c.DeleteElement(context.Background(), 5, false)

	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
	store.AssertNotCalled(t, "DeleteElement", mock.Anything, mock.Anything, mock.Anything)
}

func TestCanvas_DeleteElement(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), testConnections())
	_, err := c.SelectElement(5)
	require.NoError(t, err)

	store.On("DeleteElement", mock.Anything, mock.Anything, int64(5)).Return(nil)
	expectReload(store, testElements()[1:], testConnections())

	require.NoError(t, c.DeleteElement(context.Background(), 5, true))

	st := c.State()
	assert.Equal(t, Selection{}, st.Selection)
	assert.Len(t, st.Elements, 2)
	// The connection to the removed element is still listed but not drawn.
	assert.Len(t, st.Connections, 1)
	assert.Empty(t, c.Scene().Links)
}

func TestCanvas_DeleteConnection(t *testing.T) {
	store := new(testutil.MockDiagramStore)
	c := newLoadedCanvas(t, store, testElements(), testConnections())
	_, err := c.SelectConnection(20)
	require.NoError(t, err)

	store.On("DeleteConnection", mock.Anything, mock.Anything, int64(20)).Return(nil)
	expectReload(store, testElements(), nil)

	require.NoError(t, c.DeleteConnection(context.Background(), 20, true))

	assert.Equal(t, Selection{}, c.Selection())
	assert.Equal(t, "Connection deleted.", c.Message().Text)
	c.DismissMessage()
	assert.Nil(t, c.Message())
}
