package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/mkwon-dev/user-account-service/internal/application"
	"github.com/mkwon-dev/user-account-service/internal/domain/entity"
	"github.com/mkwon-dev/user-account-service/internal/domain/repository"
	"github.com/mkwon-dev/user-account-service/pkg/response"
	"github.com/mkwon-dev/user-account-service/pkg/validation"
)

// UserHandler maps the account lifecycle operations onto HTTP.
//
// Public routes expose the public view only; /users/me exposes the self view
// including the private address. The caller's identity on /users/me comes
// from the EMAIL header set by the trusted front layer.
type UserHandler struct {
	Svc               *userapp.Service
	Logger            *logrus.Logger
	VerifyRedirectURL string
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger, verifyRedirectURL string) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, VerifyRedirectURL: verifyRedirectURL}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required"`
	Address  string `json:"address"`
}

type updateUserRequest struct {
	Nickname string `json:"nickname"`
	Address  string `json:"address"`
}

// selfView is the owner-only projection; the only place address appears.
type selfView struct {
	ID          int64             `json:"id"`
	Email       string            `json:"email"`
	Nickname    string            `json:"nickname"`
	Address     string            `json:"address"`
	Status      entity.UserStatus `json:"status"`
	LastLoginAt *int64            `json:"last_login_at,omitempty"`
}

func selfViewOf(u *entity.User) selfView {
	return selfView{
		ID:          u.ID,
		Email:       u.Email,
		Nickname:    u.Nickname,
		Address:     u.Address,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
	}
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, userapp.ErrInvalidInput):
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", err.Error())
		c.AbortWithStatusJSON(resp.Status, resp)
	case errors.Is(err, repository.ErrEmailTaken):
		resp := response.Error[any](c, http.StatusConflict, "email already registered", nil)
		c.AbortWithStatusJSON(resp.Status, resp)
	case errors.Is(err, userapp.ErrUserNotFound):
		resp := response.Error[any](c, http.StatusNotFound, "user not found", nil)
		c.AbortWithStatusJSON(resp.Status, resp)
	case errors.Is(err, userapp.ErrCertificationMismatch):
		resp := response.Error[any](c, http.StatusForbidden, "certification code does not match", nil)
		c.AbortWithStatusJSON(resp.Status, resp)
	case errors.Is(err, userapp.ErrNotification):
		resp := response.Error[any](c, http.StatusBadGateway, "failed to send certification mail", nil)
		c.AbortWithStatusJSON(resp.Status, resp)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("unhandled service error")
		}
		resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		c.AbortWithStatusJSON(resp.Status, resp)
	}
}

// Create handles POST /api/users. Responds 201 with the public view of the
// created record.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.AbortWithStatusJSON(resp.Status, resp)
		return
	}

	u, err := h.Svc.Create(c.Request.Context(), userapp.CreateInput{
		Email:    req.Email,
		Nickname: req.Nickname,
		Address:  req.Address,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, userapp.PublicProfileOf(u))
}

// GetByID handles GET /api/users/:id. PENDING users are reported as 404.
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.fail(c, userapp.ErrUserNotFound)
		return
	}
	p, err := h.Svc.PublicProfileByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Verify handles GET /api/users/:id/verify?certificationCode=. On success the
// browser is redirected to the configured frontend URL.
func (h *UserHandler) Verify(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.fail(c, userapp.ErrUserNotFound)
		return
	}
	code := c.Query("certificationCode")
	if code == "" {
		resp := response.Error[any](c, http.StatusBadRequest, "certificationCode is required", nil)
		c.AbortWithStatusJSON(resp.Status, resp)
		return
	}
	if err := h.Svc.VerifyEmail(c.Request.Context(), id, code); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, h.VerifyRedirectURL)
}

// GetMe handles GET /api/users/me and returns the self view.
func (h *UserHandler) GetMe(c *gin.Context) {
	email := c.GetHeader("EMAIL")
	if email == "" {
		resp := response.Error[any](c, http.StatusBadRequest, "EMAIL header is required", nil)
		c.AbortWithStatusJSON(resp.Status, resp)
		return
	}
	u, err := h.Svc.GetByEmail(c.Request.Context(), email)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, selfViewOf(u))
}

// UpdateMe handles PUT /api/users/me. Only nickname and address are mutable.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	email := c.GetHeader("EMAIL")
	if email == "" {
		resp := response.Error[any](c, http.StatusBadRequest, "EMAIL header is required", nil)
		c.AbortWithStatusJSON(resp.Status, resp)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.AbortWithStatusJSON(resp.Status, resp)
		return
	}

	u, err := h.Svc.GetByEmail(c.Request.Context(), email)
	if err != nil {
		h.fail(c, err)
		return
	}
	updated, err := h.Svc.Update(c.Request.Context(), u.ID, userapp.UpdateInput{
		Nickname: req.Nickname,
		Address:  req.Address,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, selfViewOf(updated))
}

// Search handles GET /api/users/search?q= over the public-view index.
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		resp := response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		c.AbortWithStatusJSON(resp.Status, resp)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	res, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, res, "users")
	c.JSON(resp.Status, resp)
}
