package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/potterypos/backend/internal/interfaces/http/dto"
)

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.New("invalid ID format")
	}
	return id, nil
}

// bindListFilter binds pagination query parameters into a shared.Filter
func bindListFilter(c *gin.Context) (shared.Filter, error) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, err
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}
	return shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}, nil
}

// parseDateRange parses from/to query parameters. Dates may be given as
// RFC 3339 timestamps or plain calendar dates; a plain "to" date is
// extended to the end of that day.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return time.Time{}, time.Time{}, err
	}

	from, _, err := parseDateOrTime(req.From)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid from date")
	}
	to, toPlain, err := parseDateOrTime(req.To)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid to date")
	}
	if toPlain {
		to = to.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, errors.New("to must be after from")
	}
	return from, to, nil
}

func parseDateOrTime(s string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}
