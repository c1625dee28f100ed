package handlers

import (
	"errors"
	"net/http"

	"github.com/altai/formrelay/internal/api/constants"
	"github.com/altai/formrelay/internal/api/dto/common"
	"github.com/altai/formrelay/internal/api/dto/v1/lead"
	"github.com/altai/formrelay/internal/api/validation"
	"github.com/altai/formrelay/internal/models"
	"github.com/altai/formrelay/internal/service"
	"github.com/altai/formrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// LeadHandler serves one form profile
type LeadHandler struct {
	leadService *service.LeadService
	form        *service.Form
}

func NewLeadHandler(leadService *service.LeadService, form *service.Form) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
		form:        form,
	}
}

// Paths returns the routes the form is published under
func (h *LeadHandler) Paths() []string {
	return h.form.Profile.Paths
}

// Name returns the profile name
func (h *LeadHandler) Name() string {
	return h.form.Profile.Name
}

func (h *LeadHandler) Submit(c *gin.Context) {
	// Get submission from context (set by the decode middleware)
	raw, exists := c.Get(constants.ContextKeySubmission)
	if !exists {
		utils.HandleAPIError(c, errors.New("submission not found in context"), http.StatusInternalServerError, common.MsgInternalError)
		return
	}

	submission, ok := raw.(*models.Submission)
	if !ok {
		utils.HandleAPIError(c, errors.New("invalid submission type in context"), http.StatusInternalServerError, common.MsgInternalError)
		return
	}

	result, err := h.leadService.Submit(c.Request.Context(), h.form, submission, utils.GetRealIP(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.HandleSuccess(c, lead.LeadResponse{
		Message: result.Message,
		PdfURL:  result.DocumentURL,
	})
}

func (h *LeadHandler) handleError(c *gin.Context, err error) {
	var fieldErr *validation.FieldError

	switch {
	case errors.As(err, &fieldErr):
		utils.HandleFieldError(c, http.StatusBadRequest, fieldErr.Field, fieldErr.Message())
	case errors.Is(err, service.ErrConsentRequired):
		utils.HandleAPIError(c, err, http.StatusBadRequest, common.MsgConsentRequired)
	case errors.Is(err, service.ErrTokenMissing):
		utils.HandleAPIError(c, err, http.StatusBadRequest, common.MsgTokenMissing)
	case errors.Is(err, service.ErrChallengeFailed):
		utils.HandleAPIError(c, err, http.StatusForbidden, common.MsgChallengeFailed)
	default:
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.MsgInternalError)
	}
}

// MethodNotAllowed answers any method other than POST and OPTIONS
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, common.NewErrorResponse(common.MsgMethodNotAllowed))
}

// NotFound answers unknown routes
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, common.NewErrorResponse(common.MsgNotFound))
}
