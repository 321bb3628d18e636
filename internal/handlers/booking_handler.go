package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/expert-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/expert-scheduler/internal/usecase/availability"
)

type BookingHandler struct {
	bookSlot *ucAvailability.BookSlot
}

func NewBookingHandler(bookSlot *ucAvailability.BookSlot) *BookingHandler {
	return &BookingHandler{bookSlot: bookSlot}
}

type CreateBookingRequest struct {
	ExpertID  string `json:"expertId" binding:"required"`
	Date      string `json:"date" binding:"required,isodate"`
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
	Notes     string `json:"notes" binding:"max=255"`
}

type bookingResponse struct {
	ID        string `json:"id"`
	ExpertID  string `json:"expertId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	booking, err := h.bookSlot.Execute(c.Request.Context(), c.GetString(middleware.ContextUserID), ucAvailability.BookingInput{
		ExpertID:  req.ExpertID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, err, "booking_failed")
		return
	}

	httpresp.Created(c, bookingResponse{
		ID:        booking.ID,
		ExpertID:  booking.ExpertID,
		Date:      booking.Date,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Status:    booking.Status,
		Notes:     booking.Notes,
	})
}
