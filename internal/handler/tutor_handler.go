package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/museconnect/tutor-admin-api/internal/service"
	appErrors "github.com/museconnect/tutor-admin-api/pkg/errors"
	"github.com/museconnect/tutor-admin-api/pkg/response"
)

// TutorHandler serves the tutor roster endpoints.
type TutorHandler struct {
	tutors *service.TutorService
}

// NewTutorHandler constructs a TutorHandler.
func NewTutorHandler(tutors *service.TutorService) *TutorHandler {
	return &TutorHandler{tutors: tutors}
}

// List godoc
// @Summary List the tutor catalog
// @Tags Tutors
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /tutors [get]
func (h *TutorHandler) List(c *gin.Context) {
	tutors, err := h.tutors.Catalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tutors)
}

// Get godoc
// @Summary Get a tutor
// @Tags Tutors
// @Produce json
// @Param id path string true "Tutor ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /tutors/{id} [get]
func (h *TutorHandler) Get(c *gin.Context) {
	tutor, err := h.tutors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tutor)
}

// Create godoc
// @Summary Register a tutor
// @Tags Tutors
// @Accept json
// @Produce json
// @Param payload body service.CreateTutorRequest true "Tutor"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /tutors [post]
func (h *TutorHandler) Create(c *gin.Context) {
	var req service.CreateTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid tutor payload"))
		return
	}

	tutor, err := h.tutors.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tutor)
}

// Update godoc
// @Summary Update a tutor
// @Tags Tutors
// @Accept json
// @Produce json
// @Param id path string true "Tutor ID"
// @Param payload body service.UpdateTutorRequest true "Tutor"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /tutors/{id} [put]
func (h *TutorHandler) Update(c *gin.Context) {
	var req service.UpdateTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid tutor payload"))
		return
	}

	tutor, err := h.tutors.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tutor)
}

// Deactivate godoc
// @Summary Deactivate a tutor
// @Tags Tutors
// @Param id path string true "Tutor ID"
// @Success 204
// @Security BearerAuth
// @Router /tutors/{id} [delete]
func (h *TutorHandler) Deactivate(c *gin.Context) {
	if err := h.tutors.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
