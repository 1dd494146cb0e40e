package extract

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resumelens-backend/internal/shared/metrics"
	"resumelens-backend/internal/shared/server/respond"
	"resumelens-backend/internal/shared/storage/object"
	"resumelens-backend/internal/shared/telemetry"
)

const maxUploadBytes = 10 << 20 // 10 MB

// Handler serves the text extraction endpoint.
type Handler struct {
	Extractor *Extractor
	Store     object.ObjectStore // optional archive of raw uploads
}

func NewHandler(extractor *Extractor, store object.ObjectStore) *Handler {
	return &Handler{Extractor: extractor, Store: store}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/extract-text", h.ExtractText)
	rg.GET("/uploads/*storageKey", h.DownloadUpload)
}

type extractResponse struct {
	FileName   string     `json:"fileName"`
	MimeClass  string     `json:"mimeClass"`
	PageCount  int        `json:"pageCount,omitempty"`
	Text       string     `json:"text"`
	Provenance Provenance `json:"provenance"`
	StorageKey string     `json:"storageKey,omitempty"`
}

// ExtractText handles POST /extract-text. Multipart field "file" carries
// the document; the declared Content-Type of the part selects the
// extraction path.
func (h *Handler) ExtractText(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart field 'file' is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds the 10MB upload limit", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", nil)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", nil)
		return
	}
	if int64(len(data)) > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds the 10MB upload limit", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")

	doc, err := h.Extractor.Extract(c.Request.Context(), data, mimeType, fileHeader.Filename)
	if err != nil {
		metrics.IncExtractionFailed()
		respond.AppError(c, err)
		return
	}
	metrics.IncExtraction()

	respond.OK(c, extractResponse{
		FileName:   doc.SourceName,
		MimeClass:  doc.MimeClass,
		PageCount:  doc.PageCount,
		Text:       doc.Text,
		Provenance: doc.Provenance,
		StorageKey: h.archive(fileHeader.Filename, data),
	})
	// archive the derived text alongside the original
	h.archive(fileHeader.Filename+".extracted.txt", []byte(doc.Text))
}

// DownloadUpload streams an archived raw upload back to the client.
func (h *Handler) DownloadUpload(c *gin.Context) {
	if h.Store == nil {
		respond.Error(c, http.StatusNotFound, "not_found", "upload archiving is disabled", nil)
		return
	}
	storageKey := strings.TrimPrefix(c.Param("storageKey"), "/")

	rc, err := h.Store.Open(c.Request.Context(), storageKey)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "no archived upload at that key", nil)
		return
	}
	defer rc.Close()

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		telemetry.Warn("upload download interrupted", map[string]any{
			"storage_key": storageKey,
			"error":       err.Error(),
		})
	}
}

// archive keeps a copy of the raw upload in object storage. Failures are
// logged and otherwise ignored; extraction already succeeded.
func (h *Handler) archive(fileName string, data []byte) string {
	if h.Store == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	key, _, _, err := h.Store.Save(ctx, fileName, bytes.NewReader(data))
	if err != nil {
		telemetry.Warn("upload archive failed", map[string]any{
			"file":  fileName,
			"error": err.Error(),
		})
		return ""
	}
	return key
}
