package api

import (
	"errors"
	"net/http"

	reqdto "studio-ops/internal/handler/dto/request"
	resdto "studio-ops/internal/handler/dto/response"
	"studio-ops/internal/infra"
	"studio-ops/internal/usecase/commands"
	"studio-ops/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreditHandler struct {
	assignmentCommands commands.AssignmentCommands
	creditQueries      queries.CreditQueries
}

func NewCreditHandler(assignmentCommands commands.AssignmentCommands, creditQueries queries.CreditQueries) *CreditHandler {
	return &CreditHandler{
		assignmentCommands: assignmentCommands,
		creditQueries:      creditQueries,
	}
}

// @Summary Get client credit
// @Description Get a client's live credit balance with the active assignment
// @Tags credit
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} resdto.ClientCreditResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clients/{id}/credit [get]
func (h *CreditHandler) GetClientCredit(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid client ID format",
		})
		return
	}

	view, err := h.creditQueries.GetClientCredit(c.Request.Context(), clientID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Client not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromClientCreditView(view))
}

// @Summary List assignment history
// @Description List a client's package assignments, newest first
// @Tags credit
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {array} resdto.AssignmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clients/{id}/assignments [get]
func (h *CreditHandler) ListAssignments(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid client ID format",
		})
		return
	}

	views, err := h.creditQueries.ListAssignments(c.Request.Context(), clientID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Client not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAssignmentViews(views))
}

// @Summary Preview package assignment
// @Description Reconcile a proposed assignment without committing it
// @Tags credit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param request body reqdto.AssignPackageRequest true "Assignment request"
// @Success 200 {object} resdto.AssignmentPreviewResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clients/{id}/assignment/preview [post]
func (h *CreditHandler) PreviewAssignment(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid client ID format",
		})
		return
	}

	var req reqdto.AssignPackageRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	preview, err := h.assignmentCommands.PreviewAssignment(c.Request.Context(), clientID, req.ToCommand())
	if err != nil {
		h.respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAssignmentPreview(preview))
}

// @Summary Assign package
// @Description Assign a package to a client, superseding the current assignment
// @Tags credit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param request body reqdto.AssignPackageRequest true "Assignment request"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /clients/{id}/assignment [put]
func (h *CreditHandler) AssignPackage(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid client ID format",
		})
		return
	}

	var req reqdto.AssignPackageRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.assignmentCommands.AssignPackage(c.Request.Context(), clientID, req.ToCommand())
	if err != nil {
		h.respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignment_id": result.AssignmentID.String(),
	})
}

func (h *CreditHandler) respondAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrClientNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Client not found",
		})
	case errors.Is(err, commands.ErrPackageNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Package not found",
		})
	case errors.Is(err, commands.ErrPackageInactive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Package is no longer offered",
		})
	case errors.Is(err, commands.ErrInvalidPaymentStatus):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid payment status",
		})
	case errors.Is(err, commands.ErrAssignmentValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Assignment validation failed",
		})
	case errors.Is(err, commands.ErrCreditStateConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Credit state was modified concurrently, please retry",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
