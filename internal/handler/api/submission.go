package api

import (
	"errors"
	"net/http"
	"strconv"

	domsub "studio-ops/internal/domain/submission"
	reqdto "studio-ops/internal/handler/dto/request"
	resdto "studio-ops/internal/handler/dto/response"
	"studio-ops/internal/handler/middleware"
	"studio-ops/internal/infra"
	"studio-ops/internal/usecase/commands"
	"studio-ops/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errIdempotencyKeyRequired = errors.New("Idempotency-Key header is required")

type SubmissionHandler struct {
	submissionCommands commands.SubmissionCommands
	submissionQueries  queries.SubmissionQueries
	metrics            *middleware.Metrics
}

func NewSubmissionHandler(
	submissionCommands commands.SubmissionCommands,
	submissionQueries queries.SubmissionQueries,
	metrics *middleware.Metrics,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissionCommands: submissionCommands,
		submissionQueries:  submissionQueries,
		metrics:            metrics,
	}
}

// @Summary Create submission
// @Description Create a submission, reserving image credit for the client
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateSubmissionRequest true "Submission request"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /submissions [post]
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	idempotencyKey, err := h.getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	var req reqdto.CreateSubmissionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.submissionCommands.CreateSubmission(c.Request.Context(), req.ToCommand(), userID, idempotencyKey)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrClientNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Client not found",
			})
		case errors.Is(err, commands.ErrNoCreditState):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Client has no credit assigned",
			})
		case errors.Is(err, commands.ErrInsufficientCredit):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Insufficient image credit",
			})
		case errors.Is(err, domsub.ErrInvalidImageCount):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Image count must be positive",
			})
		case errors.Is(err, commands.ErrDuplicateSubmission):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Duplicate submission request with different parameters",
			})
		case errors.Is(err, commands.ErrIdempotencyInProgress):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Submission request is currently being processed",
			})
		case errors.Is(err, commands.ErrSubmissionConflict):
			h.metrics.IncCreditConflict()
			c.JSON(http.StatusConflict, gin.H{
				"error": "Credit state was modified concurrently, please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"id":       result.SubmissionID.String(),
		"replayed": result.IsReplayed,
	})
}

// @Summary Get submission
// @Description Get a submission with its pipeline timestamps
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 200 {object} resdto.SubmissionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /submissions/{id} [get]
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid submission ID format",
		})
		return
	}

	view, err := h.submissionQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Submission not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSubmissionView(view))
}

// @Summary List client submissions
// @Description List a client's submissions, newest first
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param limit query int false "Max rows to return"
// @Success 200 {array} resdto.SubmissionListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clients/{id}/submissions [get]
func (h *SubmissionHandler) ListClientSubmissions(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid client ID format",
		})
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit",
			})
			return
		}
	}

	items, err := h.submissionQueries.ListByClient(c.Request.Context(), clientID, limit)
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

	c.JSON(http.StatusOK, resdto.FromSubmissionListItems(items))
}

// @Summary Update submission status
// @Description Move a submission along the processing pipeline
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Param request body reqdto.UpdateSubmissionStatusRequest true "Status update"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /submissions/{id}/status [patch]
func (h *SubmissionHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid submission ID format",
		})
		return
	}

	var req reqdto.UpdateSubmissionStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err = h.submissionCommands.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		var transitionErr *domsub.IllegalTransitionError
		switch {
		case errors.Is(err, commands.ErrSubmissionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Submission not found",
			})
		case errors.Is(err, commands.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid status",
			})
		case errors.As(err, &transitionErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Illegal status transition",
				"from":  transitionErr.From.String(),
				"to":    transitionErr.To.String(),
			})
		case errors.Is(err, domsub.ErrAlreadyCanceled):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Submission has been cancelled",
			})
		case errors.Is(err, commands.ErrSubmissionConflict):
			h.metrics.IncCreditConflict()
			c.JSON(http.StatusConflict, gin.H{
				"error": "Credit state was modified concurrently, please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Record post-completion edit
// @Description Increment a completed submission's edit counter
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /submissions/{id}/edits [post]
func (h *SubmissionHandler) RecordEdit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid submission ID format",
		})
		return
	}

	err = h.submissionCommands.RecordEdit(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSubmissionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Submission not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Cancel submission
// @Description Cancel a submission and release its reserved image credit
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /submissions/{id} [delete]
func (h *SubmissionHandler) CancelSubmission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid submission ID format",
		})
		return
	}

	err = h.submissionCommands.CancelSubmission(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrSubmissionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Submission not found",
			})
		case errors.Is(err, commands.ErrSubmissionNotCancelable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Submission can no longer be cancelled",
			})
		case errors.Is(err, commands.ErrSubmissionConflict):
			h.metrics.IncCreditConflict()
			c.JSON(http.StatusConflict, gin.H{
				"error": "Credit state was modified concurrently, please retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SubmissionHandler) getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errIdempotencyKeyRequired
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid idempotency key format")
	}

	return key, nil
}
