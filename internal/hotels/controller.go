package hotels

import (
	"errors"
	"net/http"

	"stayease/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller handles HTTP requests for the hotel catalog
type Controller struct {
	service Service
}

// NewController creates a new hotel controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// SearchHotels handles GET /api/v1/hotels
func (ctrl *Controller) SearchHotels(c *gin.Context) {
	var query SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid search parameters", nil, err.Error())
		return
	}

	result, err := ctrl.service.SearchHotels(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Hotel search failed", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hotels retrieved successfully", result, nil)
}

// GetHotel handles GET /api/v1/hotels/:id
func (ctrl *Controller) GetHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hotel ID", nil, nil)
		return
	}

	hotel, err := ctrl.service.GetHotel(c.Request.Context(), hotelID)
	if err != nil {
		if errors.Is(err, ErrHotelNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Hotel not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get hotel", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hotel retrieved successfully", hotel, nil)
}

// GetRooms handles GET /api/v1/hotels/:id/rooms
func (ctrl *Controller) GetRooms(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hotel ID", nil, nil)
		return
	}

	rooms, err := ctrl.service.GetRooms(c.Request.Context(), hotelID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to get rooms", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Rooms retrieved successfully", gin.H{
		"rooms": rooms,
		"count": len(rooms),
	}, nil)
}

// CreateHotel handles POST /api/v1/admin/hotels
func (ctrl *Controller) CreateHotel(c *gin.Context) {
	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	hotel, err := ctrl.service.CreateHotel(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create hotel", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Hotel created successfully", hotel, nil)
}

// UpdateHotel handles PUT /api/v1/admin/hotels/:id
func (ctrl *Controller) UpdateHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hotel ID", nil, nil)
		return
	}

	var req HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	hotel, err := ctrl.service.UpdateHotel(c.Request.Context(), hotelID, req)
	if err != nil {
		if errors.Is(err, ErrHotelNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Hotel not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to update hotel", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hotel updated successfully", hotel, nil)
}

// DeleteHotel handles DELETE /api/v1/admin/hotels/:id
func (ctrl *Controller) DeleteHotel(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hotel ID", nil, nil)
		return
	}

	if err := ctrl.service.DeleteHotel(c.Request.Context(), hotelID); err != nil {
		if errors.Is(err, ErrHotelNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Hotel not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to delete hotel", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hotel deactivated successfully", nil, nil)
}

// AddRoom handles POST /api/v1/admin/hotels/:id/rooms
func (ctrl *Controller) AddRoom(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hotel ID", nil, nil)
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	room, err := ctrl.service.AddRoom(c.Request.Context(), hotelID, req)
	if err != nil {
		if errors.Is(err, ErrHotelNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Hotel not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create room", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Room created successfully", room, nil)
}
