package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"risk-advisor/pkg/response"
)

func (h *handler) page(c *gin.Context, name string, data any) {
	c.Render(http.StatusOK, render.HTML{Template: h.pages, Name: name, Data: data})
}

// IndexPage renders the welcome page.
func (h *handler) IndexPage(c *gin.Context) {
	h.page(c, "index.html", nil)
}

// RiskPage renders the risk questionnaire chat.
func (h *handler) RiskPage(c *gin.Context) {
	h.page(c, "chat.html", riskPage)
}

// SentimentPage renders the market sentiment chat.
func (h *handler) SentimentPage(c *gin.Context) {
	h.page(c, "chat.html", sentimentPage)
}

// AdvisorPage renders the advisor chat.
func (h *handler) AdvisorPage(c *gin.Context) {
	h.page(c, "chat.html", advisorPage)
}

// Risk godoc
// @Summary     Risk questionnaire turn
// @Description Sends one message to the risk assessor. is_complete turns true once the reply carries the risk assessment summary.
// @Tags        Advisory
// @Accept      json
// @Produce     json
// @Param       body body chatReq true "Chat message"
// @Success     200  {object} chatResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /risk [POST]
func (h *handler) Risk(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processChatReq(c)
	if err != nil {
		response.ValidationError(c, errInvalidBody, map[string]string{"body": err.Error()})
		return
	}

	output, err := h.uc.Risk(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Risk: %v", err)
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, h.newChatResp(output))
}

// Sentiment godoc
// @Summary     Market sentiment turn
// @Description Asks the sentiment agent about an asset. Always complete.
// @Tags        Advisory
// @Accept      json
// @Produce     json
// @Param       body body chatReq true "Chat message"
// @Success     200  {object} chatResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /sentiment [POST]
func (h *handler) Sentiment(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processChatReq(c)
	if err != nil {
		response.ValidationError(c, errInvalidBody, map[string]string{"body": err.Error()})
		return
	}

	output, err := h.uc.Sentiment(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Sentiment: %v", err)
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, h.newChatResp(output))
}

// Advisor godoc
// @Summary     Advisor insight
// @Description Builds the advisor input from stored risk and sentiment summaries. The message field is ignored.
// @Tags        Advisory
// @Accept      json
// @Produce     json
// @Param       body body chatReq true "Chat message"
// @Success     200  {object} chatResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /advisor [POST]
func (h *handler) Advisor(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processChatReq(c)
	if err != nil {
		response.ValidationError(c, errInvalidBody, map[string]string{"body": err.Error()})
		return
	}

	output, err := h.uc.Advisor(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Advisor: %v", err)
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, h.newChatResp(output))
}

// Summary godoc
// @Summary     Session summaries
// @Description Returns the stored risk and sentiment summaries of a session. Missing ones are null.
// @Tags        Sessions
// @Produce     json
// @Param       session_id path string true "Base session id"
// @Success     200 {object} summaryResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sessions/{session_id}/summary [GET]
func (h *handler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Summary(ctx, c.Param("session_id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.Summary: %v", err)
		h.abort(c, err)
		return
	}

	response.OK(c, h.newSummaryResp(output))
}

// Reset godoc
// @Summary     Reset a session
// @Description Drops the conversation of every lane and the stored summaries.
// @Tags        Sessions
// @Produce     json
// @Param       session_id path string true "Base session id"
// @Success     200 {object} response.Resp "OK"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sessions/{session_id} [DELETE]
func (h *handler) Reset(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.Reset(ctx, c.Param("session_id")); err != nil {
		h.l.Errorf(ctx, "uc.Reset: %v", err)
		h.abort(c, err)
		return
	}

	response.OK(c, nil)
}
