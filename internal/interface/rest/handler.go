package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kitadi/kitadi/internal/domain"
	"github.com/kitadi/kitadi/internal/interface/rest/middleware"
	"github.com/kitadi/kitadi/internal/service"
	"github.com/kitadi/kitadi/internal/usecase"
)

type Handler struct {
	auth          *usecase.AuthUsecase
	users         *usecase.UserUsecase
	campaigns     *usecase.CampaignUsecase
	contributions *usecase.ContributionUsecase
	authSvc       *service.AuthService
}

func NewHandler(
	auth *usecase.AuthUsecase,
	users *usecase.UserUsecase,
	campaigns *usecase.CampaignUsecase,
	contributions *usecase.ContributionUsecase,
	authSvc *service.AuthService,
) *Handler {
	return &Handler{
		auth:          auth,
		users:         users,
		campaigns:     campaigns,
		contributions: contributions,
		authSvc:       authSvc,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, m *middleware.AuthMiddleware) {
	e.POST("/auth/register", h.handleRegister)
	e.POST("/auth/login", h.handleLogin)
	e.POST("/auth/logout", h.handleLogout, m.Authenticate)
	e.GET("/auth/profile", h.handleProfile, m.Authenticate)

	c := e.Group("/campaign")
	c.GET("/campanha/:slug", h.handleCampaignBySlug)
	c.POST("", h.handleCampaignCreate, m.Authenticate)
	c.GET("", h.handleCampaignList, m.Authenticate)
	c.GET("/:id", h.handleCampaignByID, m.Authenticate)
	c.PATCH("/:id", h.handleCampaignUpdate, m.Authenticate)
	c.DELETE("/:id", h.handleCampaignDelete, m.Authenticate)

	e.POST("/contribution", h.handleDonate, m.Authenticate)

	u := e.Group("/users", m.Authenticate)
	u.PATCH("/me/password", h.handleOwnPasswordUpdate)
	u.GET("", h.handleUserList, m.RequireRole(domain.RoleAdmin))
	u.POST("", h.handleUserCreate, m.RequireRole(domain.RoleAdmin))
	u.GET("/:id", h.handleUserGet, m.RequireRole(domain.RoleAdmin))
	u.PATCH("/:id", h.handleUserUpdate, m.RequireRole(domain.RoleAdmin))
	u.PATCH("/:id/password", h.handleUserPasswordUpdate, m.RequireRole(domain.RoleAdmin))
	u.PATCH("/:id/deactivate", h.handleUserDeactivate, m.RequireRole(domain.RoleAdmin))
	u.DELETE("/:id", h.handleUserDelete, m.RequireRole(domain.RoleAdmin))
}

// --- auth ---

type registerRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *Handler) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	session, err := h.auth.Register(ctx, usecase.RegisterInput{
		Phone:    req.Phone,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, session)
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	session, err := h.auth.Login(ctx, req.Phone, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, session)
}

func (h *Handler) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()

	authHeader := c.Request().Header.Get("authorization")
	split := strings.Split(authHeader, " ")
	if len(split) != 2 {
		return writeError(c, domain.AuthenticationError{})
	}

	if err := h.authSvc.Revoke(ctx, split[1]); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) handleProfile(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.auth.Profile(ctx, middleware.RequesterID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// --- campaigns ---

type campaignRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TargetValue float64 `json:"targetValue"`
	Category    string  `json:"category"`
	ForWho      string  `json:"forWho"`
}

func (h *Handler) handleCampaignCreate(c echo.Context) error {
	ctx := c.Request().Context()

	var req campaignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	campaign, err := h.campaigns.Create(ctx, usecase.CreateCampaignInput{
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: req.TargetValue,
		Category:     req.Category,
		ForWho:       req.ForWho,
	}, middleware.RequesterID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, campaign)
}

func (h *Handler) handleCampaignList(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := domain.CampaignFilter{Name: c.QueryParam("name")}
	if raw := c.QueryParam("isActive"); raw != "" {
		isActive := raw == "true"
		filter.IsActive = &isActive
	}

	result, err := h.campaigns.List(ctx, middleware.RequesterID(c), filter, page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) handleCampaignByID(c echo.Context) error {
	ctx := c.Request().Context()

	campaign, err := h.campaigns.GetByID(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, campaign)
}

func (h *Handler) handleCampaignBySlug(c echo.Context) error {
	ctx := c.Request().Context()

	campaign, err := h.campaigns.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, campaign)
}

type campaignPatchRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	TargetValue *float64 `json:"targetValue"`
	Category    *string  `json:"category"`
	ForWho      *string  `json:"forWho"`
	IsActive    *bool    `json:"isActive"`
}

func (h *Handler) handleCampaignUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	var req campaignPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	campaign, err := h.campaigns.Update(ctx, c.Param("id"), middleware.RequesterID(c), middleware.RequesterRole(c), usecase.UpdateCampaignInput{
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: req.TargetValue,
		Category:     req.Category,
		ForWho:       req.ForWho,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, campaign)
}

func (h *Handler) handleCampaignDelete(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.campaigns.Delete(ctx, c.Param("id"), middleware.RequesterID(c), middleware.RequesterRole(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// --- contributions ---

type donateRequest struct {
	Amount        float64 `json:"amount"`
	CampaignID    string  `json:"campaignId"`
	TransactionID string  `json:"transactionId"`
}

func (h *Handler) handleDonate(c echo.Context) error {
	ctx := c.Request().Context()

	var req donateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	receipt, err := h.contributions.Donate(ctx, usecase.DonateInput{
		CampaignID:    req.CampaignID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
	}, middleware.RequesterID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, receipt)
}

// --- users ---

type userCreateRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (h *Handler) handleUserCreate(c echo.Context) error {
	ctx := c.Request().Context()

	var req userCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user, err := h.users.Create(ctx, usecase.CreateUserInput{
		Phone:    req.Phone,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) handleUserList(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.users.List(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, users)
}

func (h *Handler) handleUserGet(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.users.Get(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

type userPatchRequest struct {
	Phone    *string `json:"phone"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

func (h *Handler) handleUserUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	var req userPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user, err := h.users.Update(ctx, c.Param("id"), usecase.UpdateUserInput{
		Phone:    req.Phone,
		Name:     req.Name,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

type passwordRequest struct {
	Password string `json:"password"`
}

func (h *Handler) handleUserPasswordUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	var req passwordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user, err := h.users.UpdatePassword(ctx, c.Param("id"), req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) handleOwnPasswordUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	var req passwordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user, err := h.users.UpdatePassword(ctx, middleware.RequesterID(c), req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) handleUserDeactivate(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.users.Deactivate(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) handleUserDelete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.users.Delete(ctx, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// writeError maps the domain error taxonomy onto transport status codes
// with a stable machine-readable code. Anything unrecognized is an
// internal fault and keeps its detail out of the response.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error(), "code": "validation_failed"})
	case errors.Is(err, domain.ErrAuthentication):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error(), "code": "unauthenticated"})
	case errors.Is(err, domain.ErrAuthorization):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error(), "code": "forbidden"})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error(), "code": "not_found"})
	case errors.Is(err, domain.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error(), "code": "conflict"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error", "code": "internal"})
	}
}
