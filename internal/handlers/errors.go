package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/expert-scheduler/internal/usecase/availability"
)

type businessStatus struct {
	status  int
	message string
}

var businessErrors = map[string]businessStatus{
	domain.CodeInvalidTime:     {http.StatusBadRequest, "Times must use the HH:MM format."},
	domain.CodeInvalidRange:    {http.StatusBadRequest, "Start time must be before end time."},
	domain.CodeInvalidDate:     {http.StatusBadRequest, "Dates must use the YYYY-MM-DD format."},
	domain.CodeInvalidWeekday:  {http.StatusBadRequest, "Day of week must be between 0 (Sunday) and 6."},
	domain.CodeInvalidMonth:    {http.StatusBadRequest, "Month must be between 1 and 12."},
	domain.CodeReasonRequired:  {http.StatusBadRequest, "A reason is required to block availability."},
	domain.CodeEmptyRequest:    {http.StatusBadRequest, "The request contains no items."},
	domain.CodePatternNotFound: {http.StatusNotFound, "Availability pattern not found."},
	domain.CodeBlockNotFound:   {http.StatusNotFound, "Block not found."},
	domain.CodeTimeConflict:    {http.StatusConflict, "The time range overlaps an existing availability."},
	domain.CodeSlotUnavailable: {http.StatusConflict, "This slot is not available."},

	ucAvailability.CodeSlotInPast:     {http.StatusBadRequest, "This slot has already started."},
	ucAvailability.CodeExpertNotFound: {http.StatusNotFound, "Expert not found."},

	user.CodeEmailTaken:         {http.StatusConflict, "This email is already registered."},
	user.CodeInvalidCredentials: {http.StatusUnauthorized, "Invalid email or password."},
	user.CodeInvalidRole:        {http.StatusBadRequest, "Unknown role."},
}

// writeError renders business errors with their mapped status and logs
// anything else as an internal failure.
func writeError(c *gin.Context, err error, internalCode string) {
	if code := httperr.BusinessCode(err); code != "" {
		if bs, ok := businessErrors[code]; ok {
			httperr.Write(c, bs.status, code, bs.message)
			return
		}
		httperr.BadRequest(c, code, code)
		return
	}

	if httperr.IsExclusionConflict(err) {
		bs := businessErrors[domain.CodeTimeConflict]
		httperr.Write(c, bs.status, domain.CodeTimeConflict, bs.message)
		return
	}

	_ = c.Error(err)
	middleware.LoggerFrom(c).Error(internalCode, zap.Error(err))
	httperr.Internal(c, internalCode, "Something went wrong. Please try again.")
}

// failedTag reports whether a binding error includes a failure of the given
// validation tag.
func failedTag(err error, tag string) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

func invalidRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}
