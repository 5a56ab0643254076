package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/blob"
	"github.com/diewo77/gmao/internal/httpx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxUploadBytes bounds the multipart body of an image upload.
const MaxUploadBytes = 10 << 20

var imageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadHandler stores equipment and site pictures in the blob store.
type UploadHandler struct {
	store blob.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewUploadHandler(store blob.Store, log *zap.Logger) *UploadHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UploadHandler{store: store, log: log, now: time.Now}
}

type uploadResponse struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Create handles POST /api/uploads with a multipart "file" field. The content
// type is sniffed from the bytes, the client header is ignored.
func (h *UploadHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "file too large", nil)
			return
		}
		httpx.WriteError(w, apperr.Validation(map[string]string{"file": "required"}))
		return
	}
	defer file.Close()

	br := bufio.NewReaderSize(file, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		httpx.WriteError(w, apperr.Invalid("unreadable file"))
		return
	}
	contentType := http.DetectContentType(head)
	ext, ok := imageTypes[contentType]
	if !ok {
		allowed := make([]string, 0, len(imageTypes))
		for t := range imageTypes {
			allowed = append(allowed, t)
		}
		slices.Sort(allowed)
		httpx.WriteError(w, &apperr.Error{
			Kind:    apperr.KindValidation,
			Message: fmt.Sprintf("unsupported file type %s, expected one of %s", contentType, strings.Join(allowed, ", ")),
			Fields:  map[string]string{"file": "invalid_value"},
		})
		return
	}

	key := fmt.Sprintf("%s/%s%s", h.now().UTC().Format("2006/01"), uuid.NewString(), ext)
	info, err := h.store.Put(r.Context(), key, br, contentType)
	if err != nil {
		h.log.Error("upload failed", zap.String("key", key), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "failed to store file", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, uploadResponse{Key: info.Key, URL: info.URL, Size: info.Size, ContentType: contentType})
}

// Serve streams GET /uploads/{key...}.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	info, rc, err := h.store.Get(r.Context(), r.PathValue("key"))
	if errors.Is(err, blob.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.log.Warn("upload read failed", zap.String("key", r.PathValue("key")), zap.Error(err))
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	defer rc.Close()
	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, rc); err != nil {
		h.log.Warn("upload stream interrupted", zap.Error(err))
	}
}
