package contracts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AndyisCodingMate/housesync-product/internal/shared/server/middleware"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches contract routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/contracts", h.values)
	rg.PUT("/contracts", h.save)
	rg.POST("/contracts/generate", h.generate)
}

type saveRequest struct {
	TenantName string `json:"tenantName"`
	RentAmount string `json:"rentAmount"`
	StartDate  string `json:"startDate"`
	Address    string `json:"address"`
}

func (h *Handler) save(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required", nil)
		return
	}

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	contract := Contract{
		ID:         uuid.NewString(),
		UserID:     middleware.UserIDFromContext(c),
		TenantName: req.TenantName,
		RentAmount: req.RentAmount,
		StartDate:  req.StartDate,
		Address:    req.Address,
	}
	if err := h.Svc.SaveValues(c.Request.Context(), contract); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save contract values", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"saved": true})
}

func (h *Handler) values(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required", nil)
		return
	}

	contract, err := h.Svc.Values(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no contract values saved", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch contract values", nil)
		return
	}
	respond.JSON(c, http.StatusOK, contract)
}

func (h *Handler) generate(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required", nil)
		return
	}

	text, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no contract values saved", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "generation_failed", "failed to generate contract", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"contract": text})
}
