package controllers

import (
	"github.com/gin-gonic/gin"

	"RoboScan360/role"
)

// Client registers the catalog routes of the actor's own client.
func (h *Handlers) Client(router gin.IRouter) {
	client := router.Group("/client")
	{
		client.GET("/fetch", h.Auth.Authorize(role.ViewCatalog), h.FetchClient)
		client.POST("/scanType", h.Auth.Authorize(role.ManageCatalog), h.AddScanType)
		client.DELETE("/scanType", h.Auth.Authorize(role.ManageCatalog), h.RemoveScanType)
		client.POST("/department", h.Auth.Authorize(role.ManageCatalog), h.AddDepartment)
		client.DELETE("/department/:departmentId", h.Auth.Authorize(role.ManageCatalog), h.ArchiveDepartment)
		client.POST("/reportTemplate", h.Auth.Authorize(role.ManageCatalog), h.AddReportTemplate)
		client.DELETE("/reportTemplate/:templateId", h.Auth.Authorize(role.ManageCatalog), h.ArchiveReportTemplate)
	}
}

type scanTypeRequest struct {
	ScanType string `json:"scanType" binding:"required,max=64"`
}

type departmentRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type reportTemplateRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Body string `json:"body" binding:"required"`
}

func (h *Handlers) FetchClient(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	out, err := h.Clients.FetchClient(c.Request.Context(), a)
	respond(c, out, err)
}

func (h *Handlers) AddScanType(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req scanTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Clients.AddScanType(c.Request.Context(), a, req.ScanType)
	respond(c, out, err)
}

func (h *Handlers) RemoveScanType(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req scanTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Clients.RemoveScanType(c.Request.Context(), a, req.ScanType)
	respond(c, out, err)
}

func (h *Handlers) AddDepartment(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Clients.AddDepartment(c.Request.Context(), a, req.Name)
	respond(c, out, err)
}

func (h *Handlers) ArchiveDepartment(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "departmentId")
	if !ok {
		return
	}
	out, err := h.Clients.ArchiveDepartment(c.Request.Context(), a, id)
	respond(c, out, err)
}

func (h *Handlers) AddReportTemplate(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req reportTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Clients.AddReportTemplate(c.Request.Context(), a, req.Name, req.Body)
	respond(c, out, err)
}

func (h *Handlers) ArchiveReportTemplate(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "templateId")
	if !ok {
		return
	}
	out, err := h.Clients.ArchiveReportTemplate(c.Request.Context(), a, id)
	respond(c, out, err)
}
