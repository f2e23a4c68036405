package controllers

import (
	"github.com/gin-gonic/gin"

	"RoboScan360/role"
	"RoboScan360/services"
)

// Branch registers branch routes and the robots nested under them.
func (h *Handlers) Branch(router gin.IRouter) {
	branch := router.Group("/branch")
	{
		branch.POST("/create", h.Auth.Authorize(role.ManageBranch), h.CreateBranch)
		branch.GET("/fetch/:branchId", h.Auth.Authorize(role.ViewBranch), h.FetchBranch)
		branch.GET("/fetchAll", h.Auth.Authorize(role.ViewBranch), h.ListBranches)
		branch.PATCH("/:branchId/systemAdmin/:staffId", h.Auth.Authorize(role.ManageBranch), h.AssignSystemAdmin)

		branch.POST("/:branchId/robot", h.Auth.Authorize(role.ManageRobot), h.CreateRobot)
		branch.GET("/:branchId/robots", h.Auth.Authorize(role.ViewRobot), h.ListRobots)
		branch.PATCH("/:branchId/robot/:robotId/maintenance", h.Auth.Authorize(role.ManageRobot), h.SetRobotMaintenance)
	}
}

type createBranchRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	ContactNumber string `json:"contactNumber" binding:"required,numeric,min=7,max=15"`
	Location      string `json:"location" binding:"required,max=250"`
	PinCode       string `json:"pinCode" binding:"required,numeric,len=6"`
}

type createRobotRequest struct {
	RegistrationID string `json:"registrationId" binding:"required,max=64"`
}

type maintenanceRequest struct {
	UnderMaintenance *bool `json:"underMaintenance" binding:"required"`
}

func (h *Handlers) CreateBranch(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req createBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Branches.CreateBranch(c.Request.Context(), a, services.CreateBranchInput{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Location:      req.Location,
		PinCode:       req.PinCode,
	})
	respond(c, out, err)
}

func (h *Handlers) FetchBranch(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "branchId")
	if !ok {
		return
	}
	out, err := h.Branches.FetchBranch(c.Request.Context(), a, id)
	respond(c, out, err)
}

func (h *Handlers) ListBranches(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	out, err := h.Branches.ListBranches(c.Request.Context(), a)
	respond(c, out, err)
}

func (h *Handlers) AssignSystemAdmin(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	branchID, ok := idParam(c, "branchId")
	if !ok {
		return
	}
	staffID, ok := idParam(c, "staffId")
	if !ok {
		return
	}
	out, err := h.Branches.AssignSystemAdmin(c.Request.Context(), a, branchID, staffID)
	respond(c, out, err)
}

func (h *Handlers) CreateRobot(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	branchID, ok := idParam(c, "branchId")
	if !ok {
		return
	}
	var req createRobotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Robots.CreateRobot(c.Request.Context(), a, branchID, req.RegistrationID)
	respond(c, out, err)
}

func (h *Handlers) ListRobots(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	branchID, ok := idParam(c, "branchId")
	if !ok {
		return
	}
	out, err := h.Robots.ListRobots(c.Request.Context(), a, branchID)
	respond(c, out, err)
}

func (h *Handlers) SetRobotMaintenance(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	branchID, ok := idParam(c, "branchId")
	if !ok {
		return
	}
	robotID, ok := idParam(c, "robotId")
	if !ok {
		return
	}
	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Robots.SetMaintenance(c.Request.Context(), a, branchID, robotID, *req.UnderMaintenance)
	respond(c, out, err)
}
