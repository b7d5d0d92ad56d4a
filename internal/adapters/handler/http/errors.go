package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
)

// Clock yields the instant used to derive the current ISO year and week.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

func isoNow(clock Clock) (year, week int) {
	if clock == nil {
		clock = systemClock
	}
	return clock().ISOWeek()
}

var notFoundErrors = []error{
	domain.ErrHabitNotFound,
	domain.ErrEffortNotFound,
	domain.ErrGoalNotFound,
	domain.ErrObjectiveNotFound,
	domain.ErrTicketNotFound,
	domain.ErrUserNotFound,
}

var conflictErrors = []error{
	domain.ErrEffortConflict,
	domain.ErrEmailAlreadyExists,
}

var validationErrors = []error{
	domain.ErrHabitNameEmpty,
	domain.ErrHabitNameTooLong,
	domain.ErrHabitInvalidUserID,
	domain.ErrInvalidWeek,
	domain.ErrInvalidEndingWeek,
	domain.ErrInvalidExpectedEffort,
	domain.ErrInvalidYear,
	domain.ErrInvalidEffortHabit,
	domain.ErrInvalidEffortUser,
	domain.ErrGoalNameEmpty,
	domain.ErrObjectiveNameEmpty,
	domain.ErrInvalidQuarter,
	domain.ErrGoalRequired,
	domain.ErrTitleEmpty,
	domain.ErrContentTooLong,
	domain.ErrInvalidTicketStatus,
	domain.ErrInvalidTicketType,
	domain.ErrInvalidAnnouncement,
	domain.ErrInvalidDateRange,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
	domain.ErrOldPasswordWrong,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// handleError maps domain errors onto status codes. Anything unknown is
// recorded on the context for the request logger and answered with a 500.
func handleError(c *gin.Context, err error) {
	switch {
	case isAny(err, notFoundErrors):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case isAny(err, conflictErrors):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "wrong credentials"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case isAny(err, validationErrors):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// optionalInt parses an optional integer query parameter.
func optionalInt(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(name + " must be an integer")
	}
	return &v, nil
}
