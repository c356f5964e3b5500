package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/services"
	"github.com/rehber-app/anket-client/internal/store"
	"github.com/rehber-app/anket-client/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	studentService services.StudentService
}

func NewStudentHandler(studentService services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		studentService: studentService,
	}
}

// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}

	student, err := h.studentService.Get(c.Request.Context(), sessionStore(c), id)
	respondLoaded(&h.BaseHandler, c, student, err, store.OpFetchStudent, id.String())
}

// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}

	var update models.StudentUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating student", "student_id", id.String())

	student, err := h.studentService.Update(c.Request.Context(), sessionStore(c), id, update)
	if err != nil {
		h.handleServiceError(c, err, failureMessage(c, err, store.OpUpdateStudent, id.String()))
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Öğrenci bilgileri güncellendi", student, "student_id", id.String())
}

// @Router /students/{id}/results [get]
func (h *StudentHandler) GetStudentResults(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}

	results, err := h.studentService.GetResults(c.Request.Context(), sessionStore(c), id)
	respondLoaded(&h.BaseHandler, c, results, err, store.OpFetchStudentResults, id.String())
}

// ListByClass lists one class's students; the label is matched verbatim.
// @Router /classes/{class}/students [get]
func (h *StudentHandler) ListByClass(c *gin.Context) {
	class := c.Param("class")

	students, err := h.studentService.ListByClass(c.Request.Context(), sessionStore(c), class)
	respondLoaded(&h.BaseHandler, c, students, err, store.OpListStudentsByClass, class)
}
