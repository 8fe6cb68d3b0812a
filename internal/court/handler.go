package court

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Metafyzik/tennis-club/internal/surface"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary      Create court
// @Description  Creates a court bound to an existing surface type. Admin only.
// @Tags         courts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CourtRequest  true  "Court data"
// @Success      201      {object}  CourtWithSurface
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/admin/courts [post]
func (h *Handler) Create(c *gin.Context) {
	var req CourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cw, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, surface.ErrSurfaceTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Surface type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create court"})
		return
	}

	c.JSON(http.StatusCreated, cw)
}

// List godoc
// @Summary      List courts
// @Tags         courts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   CourtWithSurface
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/courts [get]
func (h *Handler) List(c *gin.Context) {
	courts, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courts"})
		return
	}

	c.JSON(http.StatusOK, courts)
}

// Get godoc
// @Summary      Get court
// @Tags         courts
// @Security     BearerAuth
// @Produce      json
// @Param        courtID  path      int  true  "Court ID"
// @Success      200      {object}  CourtWithSurface
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/courts/{courtID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("courtID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID"})
		return
	}

	cw, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Court not found"})
		return
	}

	c.JSON(http.StatusOK, cw)
}

// Update godoc
// @Summary      Update court
// @Description  Updates name and surface type binding. Admin only.
// @Tags         courts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        courtID  path      int           true  "Court ID"
// @Param        request  body      CourtRequest  true  "Court data"
// @Success      200      {object}  CourtWithSurface
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/admin/courts/{courtID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("courtID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID"})
		return
	}

	var req CourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cw, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCourtNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Court not found"})
		case errors.Is(err, surface.ErrSurfaceTypeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Surface type not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update court"})
		}
		return
	}

	c.JSON(http.StatusOK, cw)
}

// Delete godoc
// @Summary      Delete court
// @Description  Soft-deletes a court. Admin only.
// @Tags         courts
// @Security     BearerAuth
// @Produce      json
// @Param        courtID  path      int  true  "Court ID"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/admin/courts/{courtID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("courtID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID"})
		return
	}

	if err := h.service.SoftDelete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Court not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete court"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Court deleted successfully"})
}
