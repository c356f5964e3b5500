package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/services"
	"github.com/rehber-app/anket-client/internal/store"
	"github.com/rehber-app/anket-client/internal/utils"
)

// UserHandler serves login and the admin and guide views.
type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// Login authenticates against the backend and keeps the user in the session.
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Logging in", "email", req.Email)

	user, err := h.userService.Login(c.Request.Context(), sessionStore(c), req)
	if err != nil {
		h.handleServiceError(c, err, failureMessage(c, err, store.OpLogin, req.Email))
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Logged in", user, "user_id", user.ID.String())
}

// @Router /auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	h.userService.Logout(sessionStore(c))
	h.RespondWithSuccess(c, http.StatusOK, "Logged out", nil)
}

// @Router /admin/guides [get]
func (h *UserHandler) ListGuides(c *gin.Context) {
	guides, err := h.userService.ListGuides(c.Request.Context(), sessionStore(c))
	respondLoaded(&h.BaseHandler, c, guides, err, store.OpListGuides, "")
}

// @Router /guides/{id} [get]
func (h *UserHandler) GetGuide(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}

	guide, err := h.userService.GetGuide(c.Request.Context(), sessionStore(c), id)
	respondLoaded(&h.BaseHandler, c, guide, err, store.OpFetchGuide, id.String())
}

// @Router /guides/{id}/students [get]
func (h *UserHandler) GetGuideStudents(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}

	students, err := h.userService.GetGuideStudents(c.Request.Context(), sessionStore(c), id)
	respondLoaded(&h.BaseHandler, c, students, err, store.OpFetchGuideStudents, id.String())
}

// @Router /guides/{id}/results [get]
func (h *UserHandler) GetGuideResults(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}

	results, err := h.userService.GetGuideResults(c.Request.Context(), sessionStore(c), id)
	respondLoaded(&h.BaseHandler, c, results, err, store.OpFetchGuideResults, id.String())
}
