package newsletter

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AndyisCodingMate/housesync-product/internal/shared/server/respond"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/telemetry"
)

// Handler relays newsletter signups to the configured script endpoint.
type Handler struct {
	scriptURL  string
	httpClient *http.Client
}

// NewHandler constructs a Handler. scriptURL may be empty, in which case
// subscriptions are rejected.
func NewHandler(scriptURL string) *Handler {
	return &Handler{
		scriptURL: strings.TrimSpace(scriptURL),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// RegisterRoutes attaches the subscribe route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/subscribe", h.subscribe)
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *Handler) subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}

	if h.scriptURL == "" {
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "newsletter subscription is not configured", nil)
		return
	}

	payload, err := json.Marshal(subscribeRequest{Email: req.Email})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to forward subscription", nil)
		return
	}

	upstream, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, h.scriptURL, bytes.NewReader(payload))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to forward subscription", nil)
		return
	}
	upstream.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(upstream)
	if err != nil {
		telemetry.Error("newsletter.subscribe.relay_failed", map[string]any{
			"error": err.Error(),
		})
		respond.Error(c, http.StatusBadGateway, "relay_failed", "failed to reach subscription service", nil)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "relay_failed", "failed to read subscription response", nil)
		return
	}

	// The upstream body is passed through verbatim regardless of shape.
	c.Data(http.StatusOK, "application/json", body)
}
