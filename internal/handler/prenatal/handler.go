package prenatal

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/handler"
	"github.com/wardlink/admin-api/internal/model"
	prenatalService "github.com/wardlink/admin-api/internal/service/prenatal"
)

type Handler struct {
	service *prenatalService.Service
}

func NewHandler(service *prenatalService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prenatals := r.Group("/prenatals")
	{
		prenatals.POST("", h.CreatePrenatal)
		prenatals.GET("/:id", h.GetPrenatal)
		prenatals.PUT("/:id", h.UpdatePrenatal)
		prenatals.DELETE("/:id", h.DeletePrenatal)
		prenatals.POST("/:id/visits", h.AddVisit)
		prenatals.GET("/:id/visits", h.ListVisits)
		prenatals.PUT("/:id/visits/:visitId", h.UpdateVisit)
		prenatals.DELETE("/:id/visits/:visitId", h.DeleteVisit)
	}
	r.GET("/patients/:id/prenatals", h.ListByPatient)
}

func (h *Handler) CreatePrenatal(c *gin.Context) {
	var req model.CreatePrenatalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	prenatal, err := h.service.CreatePrenatal(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(prenatal))
}

func (h *Handler) GetPrenatal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid prenatal ID"))
		return
	}

	prenatal, err := h.service.GetPrenatal(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("prenatal record not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(prenatal))
}

func (h *Handler) UpdatePrenatal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid prenatal ID"))
		return
	}

	var req model.UpdatePrenatalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	prenatal, err := h.service.UpdatePrenatal(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(prenatal))
}

func (h *Handler) DeletePrenatal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid prenatal ID"))
		return
	}

	if err := h.service.DeletePrenatal(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListByPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	prenatals, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(prenatals))
}

func (h *Handler) AddVisit(c *gin.Context) {
	prenatalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid prenatal ID"))
		return
	}

	var req model.CreatePrenatalVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	visit, err := h.service.AddVisit(c.Request.Context(), prenatalID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(visit))
}

func (h *Handler) UpdateVisit(c *gin.Context) {
	prenatalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid prenatal ID"))
		return
	}
	visitID, err := uuid.Parse(c.Param("visitId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid visit ID"))
		return
	}

	var req model.UpdatePrenatalVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	visit, err := h.service.UpdateVisit(c.Request.Context(), prenatalID, visitID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(visit))
}

func (h *Handler) DeleteVisit(c *gin.Context) {
	visitID, err := uuid.Parse(c.Param("visitId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid visit ID"))
		return
	}

	if err := h.service.DeleteVisit(c.Request.Context(), visitID); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListVisits(c *gin.Context) {
	prenatalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid prenatal ID"))
		return
	}

	visits, err := h.service.ListVisits(c.Request.Context(), prenatalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(visits))
}
