package verification

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AndyisCodingMate/housesync-product/internal/shared/metrics"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/server/respond"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/telemetry"
)

// Handler exposes the synchronous verify-doc proxy. The route is public;
// the caller's token header is forwarded to the vendor untouched.
type Handler struct {
	Client *Client
}

// NewHandler constructs a Handler.
func NewHandler(client *Client) *Handler {
	return &Handler{Client: client}
}

// RegisterRoutes attaches the verify-doc route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/verify-doc", h.verify)
}

func (h *Handler) verify(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.DocType == "" || req.DocBase64 == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "doc_type and doc_base64 are required", nil)
		return
	}

	metrics.IncVerificationStarted()
	start := time.Now()

	result, err := h.Client.Check(c.Request.Context(), req, c.GetHeader("token"))
	metrics.ObserveVerificationDurationMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.IncVerificationFailed()
		telemetry.Error("verification.proxy.failed", map[string]any{
			"req_id": req.ReqID,
			"error":  err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "verification_failed", "document verification failed", nil)
		return
	}

	metrics.IncVerificationCompleted()
	respond.JSON(c, http.StatusOK, result)
}
