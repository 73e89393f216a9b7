package bookings

import (
	"errors"
	"net/http"

	"stayease/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller handles HTTP requests for bookings
type Controller struct {
	service Service
}

// NewController creates a new booking controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateBooking handles POST /api/v1/bookings
func (ctrl *Controller) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := ctrl.service.ConfirmBooking(c.Request.Context(), userID, c.GetString("user_email"), req)
	if err != nil {
		status, msg := bookingErrorStatus(err)
		response.RespondJSON(c, "error", status, msg, nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking confirmed successfully", result, nil)
}

// GetBooking handles GET /api/v1/bookings/:id
func (ctrl *Controller) GetBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := ctrl.service.GetBookingForUser(c.Request.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrNotBookingOwner):
			response.RespondJSON(c, "error", http.StatusForbidden, "Booking does not belong to you", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get booking", nil, err.Error())
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// GetUserBookings handles GET /api/v1/bookings
func (ctrl *Controller) GetUserBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var query BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	bookings, totalCount, err := ctrl.service.GetUserBookings(c.Request.Context(), userID, query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", gin.H{
		"bookings":    bookings,
		"total_count": totalCount,
		"page":        query.Page,
		"limit":       query.Limit,
		"total_pages": CalculateTotalPages(totalCount, query.Limit),
	}, nil)
}

// GetAllBookings handles GET /api/v1/admin/bookings
func (ctrl *Controller) GetAllBookings(c *gin.Context) {
	var query BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	bookings, totalCount, err := ctrl.service.GetAllBookings(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", gin.H{
		"bookings":    bookings,
		"total_count": totalCount,
		"page":        query.Page,
		"limit":       query.Limit,
		"total_pages": CalculateTotalPages(totalCount, query.Limit),
	}, nil)
}

// currentUserID extracts the authenticated user ID from the request context
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// bookingErrorStatus maps service errors to HTTP responses
func bookingErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return http.StatusNotFound, "Room not found"
	case errors.Is(err, ErrRoomUnavailable):
		return http.StatusConflict, "Room is not available for the selected dates"
	case errors.Is(err, ErrInvalidDateFormat),
		errors.Is(err, ErrCheckInPast),
		errors.Is(err, ErrCheckOutNotAfter),
		errors.Is(err, ErrStayTooLong),
		errors.Is(err, ErrTooManyGuests):
		return http.StatusBadRequest, "Invalid booking request"
	default:
		return http.StatusInternalServerError, "Failed to create booking"
	}
}
