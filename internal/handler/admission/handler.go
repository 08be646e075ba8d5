package admission

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/handler"
	"github.com/wardlink/admin-api/internal/model"
	admissionService "github.com/wardlink/admin-api/internal/service/admission"
	apperrors "github.com/wardlink/admin-api/pkg/errors"
)

type Handler struct {
	service *admissionService.Service
}

func NewHandler(service *admissionService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admissions := r.Group("/admissions")
	{
		admissions.POST("", h.CreateAdmission)
		admissions.GET("", h.ListAdmissions)
		admissions.GET("/:id", h.GetAdmission)
		admissions.PUT("/:id", h.UpdateAdmission)
		admissions.POST("/:id/discharge", h.Discharge)
		admissions.GET("/:id/history", h.GetHistory)
	}
	r.GET("/patients/:id/admission-history", h.ListHistory)
}

// respondError classifies service errors into the app error taxonomy before
// writing the response.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, admissionService.ErrAlreadyDischarged):
		handler.RespondError(c, apperrors.NewConflict("admission is already discharged", err))
	case errors.Is(err, admissionService.ErrAdmissionDischarged):
		handler.RespondError(c, apperrors.NewConflict("admission is discharged and read-only", err))
	default:
		handler.RespondError(c, apperrors.NewInternal(err))
	}
}

func (h *Handler) CreateAdmission(c *gin.Context) {
	var req model.CreateAdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.NewBadRequest(err.Error(), err))
		return
	}

	admission, err := h.service.CreateAdmission(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(admission))
}

func (h *Handler) GetAdmission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.RespondError(c, apperrors.NewBadRequest("invalid admission ID", err))
		return
	}

	admission, err := h.service.GetAdmission(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, apperrors.NewNotFound("admission", err))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(admission))
}

func (h *Handler) UpdateAdmission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.RespondError(c, apperrors.NewBadRequest("invalid admission ID", err))
		return
	}

	var req model.UpdateAdmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.NewBadRequest(err.Error(), err))
		return
	}

	admission, err := h.service.UpdateAdmission(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(admission))
}

func (h *Handler) Discharge(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.RespondError(c, apperrors.NewBadRequest("invalid admission ID", err))
		return
	}

	var req model.DischargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.NewBadRequest(err.Error(), err))
		return
	}

	admission, err := h.service.Discharge(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(admission))
}

func (h *Handler) ListAdmissions(c *gin.Context) {
	filters := &model.AdmissionFilters{
		Status: model.AdmissionStatus(c.Query("status")),
	}
	if patientID := c.Query("patient_id"); patientID != "" {
		id, err := uuid.Parse(patientID)
		if err != nil {
			handler.RespondError(c, apperrors.NewBadRequest("invalid patient ID", err))
			return
		}
		filters.PatientID = id
	}

	admissions, err := h.service.ListAdmissions(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(admissions))
}

func (h *Handler) GetHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.RespondError(c, apperrors.NewBadRequest("invalid admission ID", err))
		return
	}

	history, err := h.service.GetHistory(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, apperrors.NewNotFound("admission history", err))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(history))
}

func (h *Handler) ListHistory(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.RespondError(c, apperrors.NewBadRequest("invalid patient ID", err))
		return
	}

	history, err := h.service.ListHistory(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(history))
}
