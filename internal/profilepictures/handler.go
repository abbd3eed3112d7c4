package profilepictures

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AndyisCodingMate/housesync-product/internal/documents"
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

// RegisterRoutes attaches profile picture routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/profile-picture", h.upload)
	rg.GET("/profile-picture", h.active)
	rg.DELETE("/profile-picture", h.remove)
	rg.POST("/profile-picture/cleanup", h.cleanup)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, documents.MaxProfilePictureBytes+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	crop := CropGeometry{
		X:      formInt(c, "cropX"),
		Y:      formInt(c, "cropY"),
		Width:  formInt(c, "cropWidth"),
		Height: formInt(c, "cropHeight"),
	}
	rotation := formFloat(c, "rotation")

	up := Upload{
		FileName:  fileHeader.Filename,
		MimeType:  fileHeader.Header.Get("Content-Type"),
		SizeBytes: fileHeader.Size,
		Content:   file,
	}

	pic, err := h.Svc.UploadAndActivate(c.Request.Context(), userID, up, crop, rotation)
	if err != nil {
		var sizeErr documents.SizeLimitError
		switch {
		case errors.Is(err, documents.ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported file type", nil)
		case errors.As(err, &sizeErr):
			respond.Error(c, http.StatusBadRequest, "validation_error", sizeErr.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload profile picture", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(pic, h.Svc.PublicURL(pic)))
}

func (h *Handler) active(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	pic, err := h.Svc.Active(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no active profile picture", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile picture", nil)
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(pic, h.Svc.PublicURL(pic)))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.RemoveCurrent(c.Request.Context(), userID); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete profile picture", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) cleanup(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.SweepInactive(c.Request.Context(), userID); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to clean up profile pictures", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"cleaned": true})
}

type pictureResponse struct {
	ID        string       `json:"id"`
	FileName  string       `json:"fileName"`
	URL       string       `json:"url"`
	Crop      CropGeometry `json:"crop"`
	ZoomLevel float64      `json:"zoomLevel"`
	Rotation  float64      `json:"rotation"`
	IsActive  bool         `json:"isActive"`
}

func toResponse(pic ProfilePicture, url string) pictureResponse {
	return pictureResponse{
		ID:        pic.ID,
		FileName:  pic.FileName,
		URL:       url,
		Crop:      pic.Crop,
		ZoomLevel: pic.ZoomLevel,
		Rotation:  pic.Rotation,
		IsActive:  pic.IsActive,
	}
}

func formInt(c *gin.Context, field string) int {
	v, err := strconv.Atoi(c.PostForm(field))
	if err != nil {
		return 0
	}
	return v
}

func formFloat(c *gin.Context, field string) float64 {
	v, err := strconv.ParseFloat(c.PostForm(field), 64)
	if err != nil {
		return 0
	}
	return v
}
