package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ============================================================================
// Remote Store Errors
// ============================================================================

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("not authenticated with the backend")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendRejected    = errors.New("backend rejected the request")
)

// RemoteError is a non-2xx answer from the backend. Message carries the
// backend's "mensaje" field when present.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrBackendRejected:
		return true
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// ============================================================================
// Session Errors
// ============================================================================

var (
	ErrSessionNotFound = errors.New("no active session")
	ErrInvalidLogin    = errors.New("username and password are required")
)

// ============================================================================
// Canvas Errors
// ============================================================================

var (
	ErrDiagramNotLoaded     = errors.New("diagram is not loaded")
	ErrElementNotFound      = errors.New("element not found in the canvas")
	ErrConnectionNotFound   = errors.New("connection not found in the canvas")
	ErrConnectNeedsTwo      = errors.New("select exactly two elements to connect")
	ErrConfirmationRequired = errors.New("deletion requires confirmation")
	ErrInvalidDiagramID     = errors.New("diagram ID is required")
	ErrSceneTooLarge        = errors.New("diagram is too large to render")
)

// ============================================================================
// Validation Errors
// ============================================================================

var (
	ErrValidation            = errors.New("validation failed")
	ErrInvalidElementType    = errors.New("unknown element type")
	ErrInvalidConnectionType = errors.New("unknown connection type")
	ErrInvalidStatus         = errors.New("unknown diagram status")
)

// FieldError is a single failed rule on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every failed field of a form. It blocks the
// network call that would have carried the form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, " ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// orNil returns e only if at least one field failed.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ============================================================================
// Media Errors
// ============================================================================

var (
	ErrMissingFile      = errors.New("select a file to upload")
	ErrUnsupportedMedia = errors.New("invalid format, use MP3, MP4 or JPG")
	ErrFileTooLarge     = errors.New("file exceeds the upload limit")
	ErrInvalidMediaUse  = errors.New("usage must be ICONO, FONDO or ADJUNTO")
)

// UserMessage reduces any error to the single string shown in the editor
// banner. fallback is used when the error carries nothing readable.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	for _, known := range []error{
		ErrConnectNeedsTwo, ErrConfirmationRequired, ErrDiagramNotLoaded,
		ErrElementNotFound, ErrConnectionNotFound, ErrInvalidConnectionType,
		ErrMissingFile, ErrUnsupportedMedia, ErrFileTooLarge, ErrInvalidMediaUse,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return fallback
}
