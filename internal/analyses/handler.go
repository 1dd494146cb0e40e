package analyses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumelens-backend/internal/shared/apperror"
	"resumelens-backend/internal/shared/metrics"
	"resumelens-backend/internal/shared/server/respond"
	"resumelens-backend/internal/shared/telemetry"
	"resumelens-backend/internal/shared/validation"
)

// Handler serves the analysis endpoints.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.Analyze)
	rg.POST("/analyses/fallback", h.Fallback)
}

// resultSourceHeader tells clients whether the result came from the
// cache, live inference, or the heuristic fallback.
const resultSourceHeader = "X-Result-Source"

// Analyze handles POST /analyses. On a timeout-class inference failure
// it transparently re-scores through the heuristic fallback instead of
// surfacing the error.
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body must be valid JSON", nil)
		return
	}
	if issues := validation.Struct(req); len(issues) > 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid analysis request", issues)
		return
	}

	outcome, err := h.Service.Analyze(c.Request.Context(), req)
	if err != nil {
		if apperror.IsKind(err, apperror.KindUpstreamTimeout) {
			telemetry.Warn("inference timed out, using fallback analyzer", map[string]any{
				"error": err.Error(),
			})
			h.respondFallback(c, req)
			return
		}
		respond.AppError(c, err)
		return
	}

	text := CleanExtractionArtifacts(req.ResumeText)
	AttachQuotes(&outcome.Result, text)

	c.Set("resultSource", string(outcome.Source))
	c.Header(resultSourceHeader, string(outcome.Source))
	respond.OK(c, outcome.Result)
}

// Fallback handles POST /analyses/fallback: the deterministic scorer,
// exposed directly so clients can request it without an inference call.
func (h *Handler) Fallback(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body must be valid JSON", nil)
		return
	}
	if issues := validation.Struct(req); len(issues) > 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid analysis request", issues)
		return
	}
	h.respondFallback(c, req)
}

func (h *Handler) respondFallback(c *gin.Context, req AnalyzeRequest) {
	metrics.IncFallbackUsed()

	text := CleanExtractionArtifacts(req.ResumeText)
	result := FallbackAnalyze(text, req.JobDescription)
	AttachQuotes(&result, text)

	c.Set("resultSource", string(SourceFallback))
	c.Header(resultSourceHeader, string(SourceFallback))
	respond.OK(c, result)
}
