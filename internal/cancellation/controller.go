package cancellation

import (
	"errors"
	"net/http"

	"stayease/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller handles HTTP requests for cancellation policies and requests
type Controller struct {
	service Service
}

// NewController creates a new cancellation controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreatePolicy handles POST /api/v1/admin/hotels/:id/cancellation-policy
func (ctrl *Controller) CreatePolicy(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hotel ID", nil, nil)
		return
	}

	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	policy, err := ctrl.service.CreatePolicy(c.Request.Context(), hotelID, req)
	if err != nil {
		if errors.Is(err, ErrPolicyExists) {
			response.RespondJSON(c, "error", http.StatusConflict, "Cancellation policy already exists for this hotel", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusBadRequest, "Failed to create cancellation policy", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Cancellation policy created successfully", policy, nil)
}

// GetPolicy handles GET /api/v1/hotels/:id/cancellation-policy
func (ctrl *Controller) GetPolicy(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hotel ID", nil, nil)
		return
	}

	policy, err := ctrl.service.GetPolicy(c.Request.Context(), hotelID)
	if err != nil {
		if errors.Is(err, ErrPolicyNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Cancellation policy not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get cancellation policy", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Cancellation policy retrieved successfully", policy, nil)
}

// UpdatePolicy handles PUT /api/v1/admin/hotels/:id/cancellation-policy
func (ctrl *Controller) UpdatePolicy(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hotel ID", nil, nil)
		return
	}

	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	policy, err := ctrl.service.UpdatePolicy(c.Request.Context(), hotelID, req)
	if err != nil {
		if errors.Is(err, ErrPolicyNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Cancellation policy not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusBadRequest, "Failed to update cancellation policy", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Cancellation policy updated successfully", policy, nil)
}

// PreviewRefund handles POST /api/v1/bookings/:id/cancellation/preview
func (ctrl *Controller) PreviewRefund(c *gin.Context) {
	userID, bookingID, ok := ctrl.parseIDs(c)
	if !ok {
		return
	}

	preview, err := ctrl.service.PreviewRefund(c.Request.Context(), bookingID, userID)
	if err != nil {
		ctrl.respondServiceError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Refund preview calculated", preview, nil)
}

// RequestCancellation handles POST /api/v1/bookings/:id/request-cancel
func (ctrl *Controller) RequestCancellation(c *gin.Context) {
	userID, bookingID, ok := ctrl.parseIDs(c)
	if !ok {
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	cancellation, err := ctrl.service.RequestCancellation(c.Request.Context(), bookingID, userID, req)
	if err != nil {
		ctrl.respondServiceError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking cancelled successfully", cancellation, nil)
}

// GetCancellation handles GET /api/v1/cancellations/:id
func (ctrl *Controller) GetCancellation(c *gin.Context) {
	userID, cancellationID, ok := ctrl.parseIDs(c)
	if !ok {
		return
	}

	cancellation, err := ctrl.service.GetCancellation(c.Request.Context(), cancellationID, userID)
	if err != nil {
		ctrl.respondServiceError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Cancellation retrieved successfully", cancellation, nil)
}

// GetUserCancellations handles GET /api/v1/users/cancellations
func (ctrl *Controller) GetUserCancellations(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	cancellations, err := ctrl.service.GetUserCancellations(c.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list cancellations", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Cancellations retrieved successfully", gin.H{
		"cancellations": cancellations,
		"count":         len(cancellations),
	}, nil)
}

// parseIDs extracts the authenticated user ID and the path ID parameter
func (ctrl *Controller) parseIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ID", nil, nil)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

// respondServiceError maps service and classified errors to HTTP responses
func (ctrl *Controller) respondServiceError(c *gin.Context, err error) {
	var bookingErr *BookingError
	if errors.As(err, &bookingErr) {
		status := http.StatusBadGateway
		switch bookingErr.Kind {
		case ErrKindValidation:
			status = http.StatusBadRequest
		case ErrKindRateLimit:
			status = http.StatusTooManyRequests
		case ErrKindHotelUnavailable:
			status = http.StatusNotFound
		}
		response.RespondJSON(c, "error", status, bookingErr.Message, gin.H{
			"kind":      bookingErr.Kind,
			"retryable": bookingErr.Retryable,
		}, nil)
		return
	}

	switch {
	case errors.Is(err, ErrNotOwner):
		response.RespondJSON(c, "error", http.StatusForbidden, "Booking does not belong to you", nil, nil)
	case errors.Is(err, ErrBookingCancelled):
		response.RespondJSON(c, "error", http.StatusConflict, "Booking is already cancelled", nil, nil)
	case errors.Is(err, ErrCancellationExists):
		response.RespondJSON(c, "error", http.StatusConflict, "A cancellation already exists for this booking", nil, nil)
	case errors.Is(err, ErrNotAllowed):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Cancellation is not allowed for this hotel", nil, nil)
	case errors.Is(err, ErrPolicyNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "No cancellation policy found for this hotel", nil, nil)
	case errors.Is(err, ErrCancellationNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Cancellation not found", nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Cancellation request failed", nil, err.Error())
	}
}
