// internal/handlers/submission/submission_handler.go
package submission

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vahanbazaar-service/internal/middleware"
	"vahanbazaar-service/internal/pkg/response"
	subservice "vahanbazaar-service/internal/service/submission"
)

type SubmissionHandler struct {
	gate *subservice.Gate
}

func NewSubmissionHandler(gate *subservice.Gate) *SubmissionHandler {
	return &SubmissionHandler{gate: gate}
}

// Submit runs the submission gate. Mounted behind OptionalAuth: an
// anonymous caller that passes validation gets the sign-in interrupt.
// POST /drafts/submit
func (h *SubmissionHandler) Submit(c *gin.Context) {
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}

	var req subservice.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.ValidationError(c, "invalid submit payload", err)
		return
	}

	outcome, err := h.gate.Submit(c.Request.Context(), sessionID, &req, middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to submit", err)
		return
	}

	if outcome.Blocked() {
		response.Error(c, http.StatusUnprocessableEntity, outcome.Notice, nil, outcome)
		return
	}

	response.Success(c, http.StatusOK, "submission accepted", outcome)
}
