package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siesta-zumi/teamtask/internal/application/services"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/logger"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

// MemberHandler handles member-related requests
type MemberHandler struct {
	memberService *services.MemberService
	logger        *logger.Logger
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService, logger *logger.Logger) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		logger:        logger,
	}
}

// ListMembers handles the member list page: search, sort, paginate.
func (h *MemberHandler) ListMembers(c echo.Context) error {
	page, pageSize, err := parsePaging(c)
	if err != nil {
		return err
	}
	order, err := parseSortOrder(c)
	if err != nil {
		return err
	}

	filter := ports.MemberListFilter{
		Search:    c.QueryParam("search"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: order,
		Page:      page,
		PageSize:  pageSize,
	}

	result, err := h.memberService.ListMembers(c.Request().Context(), filter)
	if err != nil {
		h.logger.Errorw("List members failed", "error", err)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// CreateMember handles member creation
func (h *MemberHandler) CreateMember(c echo.Context) error {
	var req ports.CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.memberService.CreateMember(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create member failed", "error", err)
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, member)
}

// GetMember handles getting a member by ID
func (h *MemberHandler) GetMember(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	member, err := h.memberService.GetMember(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, member)
}

// UpdateMember handles member name/avatar edits
func (h *MemberHandler) UpdateMember(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ports.UpdateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.memberService.UpdateMember(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Errorw("Update member failed", "error", err, "member_id", id)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, member)
}

// DeleteMember handles member deletion
func (h *MemberHandler) DeleteMember(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.memberService.DeleteMember(c.Request().Context(), id); err != nil {
		h.logger.Errorw("Delete member failed", "error", err, "member_id", id)
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
