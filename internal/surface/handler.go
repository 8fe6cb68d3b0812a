package surface

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary      Create surface type
// @Description  Creates a new surface type. Admin only.
// @Tags         surfaces
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      SurfaceTypeRequest  true  "Surface type data"
// @Success      201      {object}  SurfaceType
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/admin/surfaces [post]
func (h *Handler) Create(c *gin.Context) {
	var req SurfaceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create surface type"})
		return
	}

	c.JSON(http.StatusCreated, st)
}

// List godoc
// @Summary      List surface types
// @Tags         surfaces
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   SurfaceType
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/surfaces [get]
func (h *Handler) List(c *gin.Context) {
	surfaces, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch surface types"})
		return
	}

	c.JSON(http.StatusOK, surfaces)
}

// Get godoc
// @Summary      Get surface type
// @Tags         surfaces
// @Security     BearerAuth
// @Produce      json
// @Param        surfaceID  path      int  true  "Surface type ID"
// @Success      200        {object}  SurfaceType
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /api/surfaces/{surfaceID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("surfaceID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid surface type ID"})
		return
	}

	st, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Surface type not found"})
		return
	}

	c.JSON(http.StatusOK, st)
}

// Update godoc
// @Summary      Update surface type
// @Description  Updates name and price per minute. Admin only.
// @Tags         surfaces
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        surfaceID  path      int                 true  "Surface type ID"
// @Param        request    body      SurfaceTypeRequest  true  "Surface type data"
// @Success      200        {object}  SurfaceType
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /api/admin/surfaces/{surfaceID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("surfaceID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid surface type ID"})
		return
	}

	var req SurfaceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrSurfaceTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Surface type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update surface type"})
		return
	}

	c.JSON(http.StatusOK, st)
}

// Delete godoc
// @Summary      Delete surface type
// @Description  Soft-deletes a surface type. Admin only.
// @Tags         surfaces
// @Security     BearerAuth
// @Produce      json
// @Param        surfaceID  path      int  true  "Surface type ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /api/admin/surfaces/{surfaceID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("surfaceID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid surface type ID"})
		return
	}

	if err := h.service.SoftDelete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrSurfaceTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Surface type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete surface type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Surface type deleted successfully"})
}
