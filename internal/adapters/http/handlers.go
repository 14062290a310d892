package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/domain/listview"
)

// domainError maps domain sentinel errors onto HTTP status codes. Anything
// unrecognized propagates and becomes a 500 in the server's error handler.
func domainError(err error) error {
	switch {
	case errors.Is(err, entities.ErrMemberNotFound),
		errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrSubtaskNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrDuplicateAssignment):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "operation unavailable: store unreachable")
	case errors.Is(err, entities.ErrInvalidDateRange),
		errors.Is(err, entities.ErrInvalidRecurrence),
		errors.Is(err, entities.ErrInvalidStatus),
		errors.Is(err, entities.ErrInvalidRole):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}

func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// pagingDefaults mirror the list pages' initial state.
const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

func parsePaging(c echo.Context) (page, pageSize int, err error) {
	page, pageSize = defaultPage, defaultPageSize

	if raw := c.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid page parameter")
		}
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil || pageSize < 1 || pageSize > maxPageSize {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid page_size parameter")
		}
	}
	return page, pageSize, nil
}

func parseSortOrder(c echo.Context) (listview.Direction, error) {
	switch c.QueryParam("sort_order") {
	case "", string(listview.Ascending):
		return listview.Ascending, nil
	case string(listview.Descending):
		return listview.Descending, nil
	default:
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid sort_order parameter")
	}
}
