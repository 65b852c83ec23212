package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"vision-batch-service/internal/config"
	"vision-batch-service/internal/ingest"
	"vision-batch-service/internal/service"
	"vision-batch-service/internal/vision"
)

type Handler struct {
	batchService *service.BatchService
	config       *config.Config
	log          zerolog.Logger
}

func NewHandler(
	batchService *service.BatchService,
	cfg *config.Config,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		batchService: batchService,
		config:       cfg,
		log:          log,
	}
}

func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.POST("/analyze", h.analyzeBatch)
	}
}

func (h *Handler) analyzeBatch(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	if !strings.Contains(contentType, "multipart/form-data") {
		c.JSON(http.StatusBadRequest, errorResponse(service.ErrNoFiles.Error()))
		return
	}

	src, err := h.uploadSource(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	limits := ingest.Limits{
		MaxFileBytes: h.config.Upload.MaxFileBytes,
		MaxFiles:     h.config.Upload.MaxFiles,
	}
	files, err := ingest.Ingest(src, contentType, limits)
	if err != nil {
		h.respondError(c, err)
		return
	}

	envelope, err := h.batchService.ProcessBatch(c.Request.Context(), files)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// uploadSource picks the transport shape for the multipart parser. With
// buffering enabled the body is received in full first, so an already
// consumed stream cannot surface as a spurious truncated-form error.
func (h *Handler) uploadSource(c *gin.Context) (ingest.Source, error) {
	if !h.config.Upload.BufferBody {
		return ingest.Streamed(c.Request.Body), nil
	}

	maxBody := h.config.Upload.MaxFileBytes*int64(h.config.Upload.MaxFiles) + 1<<20
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBody))
	if err != nil {
		return ingest.Source{}, ingest.ErrMalformedMultipart
	}
	return ingest.Buffered(body), nil
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoFiles),
		errors.Is(err, ingest.ErrInvalidMediaType),
		errors.Is(err, ingest.ErrFileTooLarge),
		errors.Is(err, ingest.ErrTooManyFiles),
		errors.Is(err, ingest.ErrMalformedMultipart):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, vision.ErrUpstreamFormat):
		c.JSON(http.StatusBadGateway, errorResponseWithDetails("model returned invalid JSON", err.Error()))
	default:
		h.log.Error().Err(err).Msg("failed to process batch")
		c.JSON(http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}

func errorResponseWithDetails(message, details string) gin.H {
	return gin.H{
		"error":   message,
		"details": details,
	}
}
