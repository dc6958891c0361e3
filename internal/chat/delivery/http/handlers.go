package http

import (
	"github.com/gin-gonic/gin"

	"spendly/pkg/response"
)

// Chat godoc
// @Summary     Run one conversation turn
// @Description Routes the message to the intent's calculator, drives the tax intake and returns the recent log with a summary.
// @Tags        Chat
// @Accept      multipart/form-data,json
// @Produce     json
// @Param       session_id     formData string true  "Session id"
// @Param       message        formData string true  "User message"
// @Param       intent         formData string true  "spending_plan | tax_saver | investment | loan"
// @Param       file_path      formData string false "Path returned by /upload"
// @Param       cibil_score    formData int    false "Credit score"
// @Param       monthly_income formData number false "Monthly income"
// @Param       existing_emi   formData number false "Existing EMIs per month"
// @Param       annual_income  formData number false "Annual income"
// @Success     200 {object} chatResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     503 {object} response.Resp "Session store unavailable, retry"
// @Router      /chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processChatReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.HandleTurn(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.HandleTurn: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newChatResp(output))
}

// Session godoc
// @Summary     Inspect a session
// @Description Returns the full stored document for a session id. Unknown ids return an empty session.
// @Tags        Chat
// @Produce     json
// @Param       id path string true "Session id"
// @Success     200 {object} model.Session
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Session store unavailable, retry"
// @Router      /sessions/{id} [GET]
func (h *handler) Session(c *gin.Context) {
	ctx := c.Request.Context()

	sess, err := h.uc.Session(ctx, c.Param("id"))
	if err != nil {
		h.l.Warnf(ctx, "uc.Session: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, sess)
}
