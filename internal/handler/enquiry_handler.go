package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/museconnect/tutor-admin-api/internal/service"
	appErrors "github.com/museconnect/tutor-admin-api/pkg/errors"
	"github.com/museconnect/tutor-admin-api/pkg/response"
)

// EnquiryHandler serves the enquiry dashboard endpoints.
type EnquiryHandler struct {
	enquiries   *service.EnquiryService
	assignments *service.AssignmentService
	archive     *service.ArchiveService
	exports     *service.ExportService
}

// NewEnquiryHandler constructs an EnquiryHandler.
func NewEnquiryHandler(enquiries *service.EnquiryService, assignments *service.AssignmentService, archive *service.ArchiveService, exports *service.ExportService) *EnquiryHandler {
	return &EnquiryHandler{
		enquiries:   enquiries,
		assignments: assignments,
		archive:     archive,
		exports:     exports,
	}
}

// List godoc
// @Summary List all enquiries
// @Description Returns the flattened enquiry view, one row per student.
// @Tags Enquiries
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /enquiries [get]
func (h *EnquiryHandler) List(c *gin.Context) {
	enquiries, err := h.enquiries.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enquiries)
}

// Assign godoc
// @Summary Apply tutor selections to an enquiry's students
// @Tags Enquiries
// @Accept json
// @Param id path string true "Enquiry ID"
// @Param payload body service.AssignTutorsRequest true "Student to tutor selections"
// @Success 204
// @Security BearerAuth
// @Router /enquiries/{id}/assignments [post]
func (h *EnquiryHandler) Assign(c *gin.Context) {
	var req service.AssignTutorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}

	if err := h.assignments.Assign(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AllocatableTutors godoc
// @Summary List tutors eligible for a student
// @Description Tutors whose instruments overlap the student's requested set, in catalog order.
// @Tags Enquiries
// @Produce json
// @Param id path string true "Enquiry ID"
// @Param studentId query string true "Student ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /enquiries/{id}/allocatable-tutors [get]
func (h *EnquiryHandler) AllocatableTutors(c *gin.Context) {
	studentID := c.Query("studentId")
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId is required"))
		return
	}

	tutors, err := h.assignments.AllocatableTutors(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tutors)
}

// Archive godoc
// @Summary Archive an enquiry snapshot
// @Tags Enquiries
// @Param id path string true "Enquiry ID"
// @Success 204
// @Security BearerAuth
// @Router /enquiries/{id}/archive [post]
func (h *EnquiryHandler) Archive(c *gin.Context) {
	if err := h.archive.Archive(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Archive and delete an enquiry
// @Tags Enquiries
// @Param id path string true "Enquiry ID"
// @Success 204
// @Security BearerAuth
// @Router /enquiries/{id} [delete]
func (h *EnquiryHandler) Delete(c *gin.Context) {
	if err := h.archive.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteStudent godoc
// @Summary Delete a single student row
// @Tags Enquiries
// @Param id path string true "Student ID"
// @Success 204
// @Security BearerAuth
// @Router /students/{id} [delete]
func (h *EnquiryHandler) DeleteStudent(c *gin.Context) {
	if err := h.archive.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export the enquiry list
// @Tags Enquiries
// @Produce text/csv,application/pdf
// @Param format query string true "Export format" Enums(csv, pdf)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /enquiries/export [get]
func (h *EnquiryHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.FormatCSV)))

	result, err := h.exports.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
