package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/expert-scheduler/internal/usecase/availability"
)

type AvailabilityHandler struct {
	listPatterns  *ucAvailability.ListPatterns
	getMonthly    *ucAvailability.GetMonthlyAvailability
	getDaySlots   *ucAvailability.GetDaySlots
	createPattern *ucAvailability.CreatePatterns
	updatePattern *ucAvailability.UpdatePatterns
	deletePattern *ucAvailability.DeletePatterns
	block         *ucAvailability.Block
	unblock       *ucAvailability.Unblock
}

func NewAvailabilityHandler(
	listPatterns *ucAvailability.ListPatterns,
	getMonthly *ucAvailability.GetMonthlyAvailability,
	getDaySlots *ucAvailability.GetDaySlots,
	createPattern *ucAvailability.CreatePatterns,
	updatePattern *ucAvailability.UpdatePatterns,
	deletePattern *ucAvailability.DeletePatterns,
	block *ucAvailability.Block,
	unblock *ucAvailability.Unblock,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		listPatterns:  listPatterns,
		getMonthly:    getMonthly,
		getDaySlots:   getDaySlots,
		createPattern: createPattern,
		updatePattern: updatePattern,
		deletePattern: deletePattern,
		block:         block,
		unblock:       unblock,
	}
}

// ======================================================
// Requests
// ======================================================

type PatternRequest struct {
	DayOfWeek *int   `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
}

// CreateAvailabilityRequest may name the date the patterns were added from;
// a whole-day block on that date is lifted.
type CreateAvailabilityRequest struct {
	Availabilities []PatternRequest `json:"availabilities" binding:"required,min=1,dive"`
	Date           string           `json:"date" binding:"omitempty,isodate"`
}

type UpdatePatternRequest struct {
	ID        string `json:"id" binding:"required"`
	DayOfWeek *int   `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
}

type DeleteAvailabilityRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// BlockRequest leaves Reason unchecked at binding so an empty reason surfaces
// as reason_required.
type BlockRequest struct {
	Date      string `json:"date" binding:"required,isodate"`
	Reason    string `json:"reason"`
	StartTime string `json:"startTime" binding:"omitempty,hhmm"`
	EndTime   string `json:"endTime" binding:"omitempty,hhmm"`
}

type UnblockRequest struct {
	Date      string `json:"date" binding:"required,isodate"`
	StartTime string `json:"startTime" binding:"omitempty,hhmm"`
	EndTime   string `json:"endTime" binding:"omitempty,hhmm"`
}

type blockResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Reason    string `json:"reason"`
}

// ======================================================
// Reads
// ======================================================

func (h *AvailabilityHandler) ListPatterns(c *gin.Context) {
	patterns, err := h.listPatterns.Execute(c.Request.Context(), c.Param("expertId"))
	if err != nil {
		writeError(c, err, "list_patterns_failed")
		return
	}
	httpresp.OK(c, httpresp.NonNil(patterns))
}

func (h *AvailabilityHandler) Monthly(c *gin.Context) {
	month, errM := strconv.Atoi(c.Query("month"))
	year, errY := strconv.Atoi(c.Query("year"))
	if errM != nil || errY != nil {
		writeError(c, httperr.ErrBusiness(domain.CodeInvalidMonth), "")
		return
	}

	out, err := h.getMonthly.Execute(c.Request.Context(), c.Param("expertId"), month, year)
	if err != nil {
		writeError(c, err, "monthly_availability_failed")
		return
	}
	httpresp.OK(c, out)
}

func (h *AvailabilityHandler) DaySlots(c *gin.Context) {
	slots, err := h.getDaySlots.Execute(c.Request.Context(), c.Param("expertId"), c.Query("date"))
	if err != nil {
		writeError(c, err, "day_slots_failed")
		return
	}
	httpresp.OK(c, httpresp.NonNil(slots))
}

// ======================================================
// Mutations (authenticated expert only)
// ======================================================

func (h *AvailabilityHandler) Create(c *gin.Context) {
	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	in := make([]ucAvailability.PatternInput, 0, len(req.Availabilities))
	for _, a := range req.Availabilities {
		in = append(in, ucAvailability.PatternInput{
			DayOfWeek: *a.DayOfWeek,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
		})
	}

	created, err := h.createPattern.ExecuteForDate(c.Request.Context(), c.GetString(middleware.ContextUserID), req.Date, in)
	if err != nil {
		writeError(c, err, "create_availability_failed")
		return
	}
	httpresp.Created(c, created)
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	var req []UpdatePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	in := make([]ucAvailability.PatternUpdate, 0, len(req))
	for _, p := range req {
		in = append(in, ucAvailability.PatternUpdate{
			ID:        p.ID,
			DayOfWeek: *p.DayOfWeek,
			StartTime: p.StartTime,
			EndTime:   p.EndTime,
		})
	}

	updated, err := h.updatePattern.Execute(c.Request.Context(), c.GetString(middleware.ContextUserID), in)
	if err != nil {
		writeError(c, err, "update_availability_failed")
		return
	}
	httpresp.OK(c, updated)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	var req DeleteAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	n, err := h.deletePattern.Execute(c.Request.Context(), c.GetString(middleware.ContextUserID), req.IDs)
	if err != nil {
		writeError(c, err, "delete_availability_failed")
		return
	}
	httpresp.OK(c, gin.H{"deleted": n})
}

func (h *AvailabilityHandler) Block(c *gin.Context) {
	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	block, err := h.block.Execute(c.Request.Context(), c.GetString(middleware.ContextUserID), ucAvailability.BlockInput{
		Date:      req.Date,
		Reason:    req.Reason,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		writeError(c, err, "block_failed")
		return
	}

	httpresp.OK(c, blockResponse{
		ID:        block.ID,
		Date:      block.Date,
		StartTime: block.StartTime,
		EndTime:   block.EndTime,
		Reason:    block.Reason,
	})
}

func (h *AvailabilityHandler) Unblock(c *gin.Context) {
	var req UnblockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	n, err := h.unblock.Execute(c.Request.Context(), c.GetString(middleware.ContextUserID), ucAvailability.UnblockInput{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		writeError(c, err, "unblock_failed")
		return
	}
	httpresp.OK(c, gin.H{"removed": n})
}
