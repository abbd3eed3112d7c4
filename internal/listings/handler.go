package listings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AndyisCodingMate/housesync-product/internal/shared/server/middleware"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/server/respond"
	"github.com/AndyisCodingMate/housesync-product/internal/users"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches listing routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties", h.browse)
	rg.GET("/properties/mine", h.mine)
	rg.GET("/properties/:id", h.get)
	rg.POST("/properties", h.create)
	rg.PUT("/properties/:id", h.update)
	rg.DELETE("/properties/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	if middleware.UserRoleFromContext(c) != users.RoleLandlord {
		respond.Error(c, http.StatusForbidden, "forbidden", "only landlords can post listings", nil)
		return
	}

	var draft Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	listing, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), draft)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	c.Set("listingId", listing.ID)
	respond.JSON(c, http.StatusCreated, listing)
}

func (h *Handler) browse(c *gin.Context) {
	limit, offset := pagination(c)
	results, err := h.Svc.Browse(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list properties", nil)
		return
	}
	respond.JSON(c, http.StatusOK, results)
}

func (h *Handler) mine(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required", nil)
		return
	}
	limit, offset := pagination(c)
	results, err := h.Svc.Mine(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list properties", nil)
		return
	}
	respond.JSON(c, http.StatusOK, results)
}

func (h *Handler) get(c *gin.Context) {
	listing, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "listing not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch listing", nil)
		return
	}
	respond.JSON(c, http.StatusOK, listing)
}

func (h *Handler) update(c *gin.Context) {
	var draft Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	listing, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), draft)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "listing not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "listing belongs to another landlord", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, listing)
}

func (h *Handler) remove(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "listing not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete listing", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 20
	offset = 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
