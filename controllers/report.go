package controllers

import (
	"github.com/gin-gonic/gin"

	"RoboScan360/role"
)

func (h *Handlers) Report(router gin.IRouter) {
	report := router.Group("/report")
	{
		report.POST("/create/:appointmentId", h.Auth.Authorize(role.ManageReport), h.CreateReport)
		report.GET("/fetch/:reportId", h.Auth.Authorize(role.ViewReport), h.FetchReport)
		report.DELETE("/delete/:reportId", h.Auth.Authorize(role.ManageReport), h.ArchiveReport)
	}
}

type createReportRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *Handlers) CreateReport(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	appointmentID, ok := idParam(c, "appointmentId")
	if !ok {
		return
	}
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Reports.CreateReport(c.Request.Context(), a, appointmentID, req.Body)
	respond(c, out, err)
}

func (h *Handlers) FetchReport(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "reportId")
	if !ok {
		return
	}
	out, err := h.Reports.FetchReport(c.Request.Context(), a, id)
	respond(c, out, err)
}

func (h *Handlers) ArchiveReport(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "reportId")
	if !ok {
		return
	}
	out, err := h.Reports.ArchiveReport(c.Request.Context(), a, id)
	respond(c, out, err)
}
