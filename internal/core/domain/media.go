package domain

import (
	"path/filepath"
	"strings"
)

type MediaType string

const (
	MediaTypeImage MediaType = "IMAGEN"
	MediaTypeAudio MediaType = "AUDIO"
	MediaTypeVideo MediaType = "VIDEO"
)

type MediaUse string

const (
	MediaUseIcon       MediaUse = "ICONO"
	MediaUseBackground MediaUse = "FONDO"
	MediaUseAttachment MediaUse = "ADJUNTO"
)

// MaxUploadMB is the client-side upload ceiling.
const MaxUploadMB = 20

var mediaTypeByExt = map[string]MediaType{
	"mp3":  MediaTypeAudio,
	"mp4":  MediaTypeVideo,
	"jpg":  MediaTypeImage,
	"jpeg": MediaTypeImage,
}

// MediaTypeForFile infers the media type from a file name's extension.
func MediaTypeForFile(name string) (MediaType, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	t, ok := mediaTypeByExt[ext]
	return t, ok
}

// ParseMediaUse normalises a usage tag. Unknown tags report false.
func ParseMediaUse(s string) (MediaUse, bool) {
	u := MediaUse(strings.ToUpper(strings.TrimSpace(s)))
	switch u {
	case MediaUseIcon, MediaUseBackground, MediaUseAttachment:
		return u, true
	}
	return "", false
}

type MediaFile struct {
	ID          int64     `json:"id_archivo"`
	UserID      int64     `json:"id_usuario"`
	Type        MediaType `json:"tipo_media"`
	Title       string    `json:"titulo,omitempty"`
	Description string    `json:"descripcion,omitempty"`
	SizeBytes   int64     `json:"tamano_bytes"`
	Width       *int      `json:"ancho,omitempty"`
	Height      *int      `json:"alto,omitempty"`
	Duration    *float64  `json:"duracion_segundos,omitempty"`
	Path        string    `json:"ruta_archivo"`
	PublicURL   string    `json:"url_publica,omitempty"`
}

// Upload is a file on its way to the backend.
type Upload struct {
	Filename    string
	Size        int64
	Type        MediaType
	Title       string
	Description string
	Content     []byte
}

type DiagramMedia struct {
	DiagramID   int64     `json:"id_diagrama"`
	FileID      int64     `json:"id_archivo"`
	Description string    `json:"descripcion,omitempty"`
	Order       int       `json:"orden"`
	Type        MediaType `json:"tipo_media,omitempty"`
	Title       string    `json:"titulo,omitempty"`
	Path        string    `json:"ruta_archivo,omitempty"`
}

type ElementMedia struct {
	ElementID int64     `json:"id_elemento"`
	FileID    int64     `json:"id_archivo"`
	Use       MediaUse  `json:"tipo_uso"`
	Type      MediaType `json:"tipo_media,omitempty"`
	Title     string    `json:"titulo,omitempty"`
	Path      string    `json:"ruta_archivo,omitempty"`
}
