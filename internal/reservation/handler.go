package reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Metafyzik/tennis-club/internal/auth"
	"github.com/Metafyzik/tennis-club/internal/court"
	"github.com/Metafyzik/tennis-club/internal/user"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func parseRequest(c *gin.Context) (Request, bool) {
	var body ReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return Request{}, false
	}

	start, err := time.Parse(time.RFC3339, body.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start time, expected RFC 3339"})
		return Request{}, false
	}
	end, err := time.Parse(time.RFC3339, body.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end time, expected RFC 3339"})
		return Request{}, false
	}

	return Request{
		CourtID:   body.CourtID,
		IsDoubles: *body.IsDoubles,
		Start:     start,
		End:       end,
	}, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInterval), errors.Is(err, ErrPastReservation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
	case errors.Is(err, court.ErrCourtNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Court not found"})
	case errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, ErrSlotConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrTransientFailure):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporarily unable to process reservation, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process reservation"})
	}
}

// Create godoc
// @Summary      Create reservation
// @Description  Books a court for a half-open time interval [start, end). Returns 409 when the slot overlaps an existing reservation.
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ReservationRequest  true  "Reservation data"
// @Success      201      {object}  FullView
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      503      {object}  api.ErrorResponse
// @Router       /api/reservations [post]
func (h *Handler) Create(c *gin.Context) {
	caller, ok := auth.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	req, ok := parseRequest(c)
	if !ok {
		return
	}

	view, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// Update godoc
// @Summary      Update reservation
// @Description  Reschedules a future reservation. Only the owner may update; the price is recomputed.
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        reservationID  path      int                 true  "Reservation ID"
// @Param        request        body      ReservationRequest  true  "Reservation data"
// @Success      200            {object}  FullView
// @Failure      400            {object}  api.ErrorResponse
// @Failure      403            {object}  api.ErrorResponse
// @Failure      404            {object}  api.ErrorResponse
// @Failure      409            {object}  api.ErrorResponse
// @Router       /api/reservations/{reservationID} [put]
func (h *Handler) Update(c *gin.Context) {
	caller, ok := auth.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("reservationID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	req, ok := parseRequest(c)
	if !ok {
		return
	}

	view, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Delete godoc
// @Summary      Cancel reservation
// @Description  Soft-deletes a future reservation. Only the owner may cancel.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  api.MessageResponse
// @Failure      400            {object}  api.ErrorResponse
// @Failure      403            {object}  api.ErrorResponse
// @Failure      404            {object}  api.ErrorResponse
// @Router       /api/reservations/{reservationID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	caller, ok := auth.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("reservationID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	if err := h.service.SoftDelete(c.Request.Context(), caller, id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled successfully"})
}

// Get godoc
// @Summary      Get reservation
// @Description  Returns one reservation. Admins also see the owner's identity.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  FullView
// @Failure      400            {object}  api.ErrorResponse
// @Failure      404            {object}  api.ErrorResponse
// @Router       /api/reservations/{reservationID} [get]
func (h *Handler) Get(c *gin.Context) {
	caller, ok := auth.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("reservationID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	view, err := h.service.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// List godoc
// @Summary      List reservations
// @Description  Returns all reservations ordered by start time, earliest first.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   FullView
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/reservations [get]
func (h *Handler) List(c *gin.Context) {
	caller, ok := auth.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	views, err := h.service.GetAll(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// ListByCourt godoc
// @Summary      List reservations for a court
// @Description  Returns a court's reservations ordered by start time.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        courtID  path      int  true  "Court ID"
// @Success      200      {array}   FullView
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/courts/{courtID}/reservations [get]
func (h *Handler) ListByCourt(c *gin.Context) {
	caller, ok := auth.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	courtID, err := strconv.ParseInt(c.Param("courtID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID"})
		return
	}

	views, err := h.service.GetByCourt(c.Request.Context(), caller, courtID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// ListMine godoc
// @Summary      List own reservations
// @Description  Returns the caller's reservations. Set future_only=true to keep only upcoming ones.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        future_only  query     bool  false  "Only reservations starting after now"
// @Success      200          {array}   FullView
// @Failure      500          {object}  api.ErrorResponse
// @Router       /api/reservations/mine [get]
func (h *Handler) ListMine(c *gin.Context) {
	caller, ok := auth.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	futureOnly := c.Query("future_only") == "true"

	views, err := h.service.GetForCaller(c.Request.Context(), caller, futureOnly)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// ListByPhone godoc
// @Summary      List reservations by phone number
// @Description  Returns the reservations of the user holding the given phone number. Admin only.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        phoneNumber  path      string  true   "Phone number"
// @Param        future_only  query     bool    false  "Only reservations starting after now"
// @Success      200          {array}   FullView
// @Failure      404          {object}  api.ErrorResponse
// @Router       /api/admin/reservations/by-phone/{phoneNumber} [get]
func (h *Handler) ListByPhone(c *gin.Context) {
	caller, ok := auth.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	phoneNumber := c.Param("phoneNumber")
	futureOnly := c.Query("future_only") == "true"

	views, err := h.service.GetByPhoneNumber(c.Request.Context(), caller, phoneNumber, futureOnly)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}
