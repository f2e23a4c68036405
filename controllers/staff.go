package controllers

import (
	"github.com/gin-gonic/gin"

	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/services"
)

// Login registers the public auth routes.
func (h *Handlers) Login(router gin.IRouter) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.LoginStaff)
	}
}

func (h *Handlers) Staff(router gin.IRouter) {
	staff := router.Group("/staff")
	{
		staff.POST("/create", h.Auth.Authorize(role.ManageStaff), h.CreateStaff)
		staff.GET("/fetch/:staffId", h.Auth.Authorize(role.ViewStaff), h.FetchStaff)
		staff.GET("/fetchAll", h.Auth.Authorize(role.ViewStaff), h.ListStaff)
		staff.DELETE("/delete/:staffId", h.Auth.Authorize(role.ManageStaff), h.ArchiveStaff)
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type doctorProfileRequest struct {
	RegistrationID        string               `json:"registrationId" binding:"required,max=64"`
	DepartmentID          int64                `json:"departmentId" binding:"required,gt=0"`
	CompletedTrainingYear int                  `json:"completedTrainingYear" binding:"omitempty,min=1900,max=2100"`
	WorkingHours          *models.WorkingHours `json:"workingHours"`
}

type createStaffRequest struct {
	Name     string                `json:"name" binding:"required,max=100"`
	Email    string                `json:"email" binding:"required,email"`
	PhoneNo  string                `json:"phoneNo" binding:"required,numeric,min=7,max=15"`
	Password string                `json:"password" binding:"required,min=8,max=72"`
	Role     role.Role             `json:"role" binding:"required"`
	BranchID *int64                `json:"branchId" binding:"omitempty,gt=0"`
	Doctor   *doctorProfileRequest `json:"doctor" binding:"omitempty"`
}

type listStaffQuery struct {
	Role role.Role `form:"role"`
}

func (h *Handlers) LoginStaff(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	respond(c, out, err)
}

/*
* Bind JSON
* Role and branch rules are checked by the service
 */
func (h *Handlers) CreateStaff(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	in := services.CreateStaffInput{
		Name:     req.Name,
		Email:    req.Email,
		PhoneNo:  req.PhoneNo,
		Password: req.Password,
		Role:     req.Role,
		BranchID: req.BranchID,
	}
	if req.Doctor != nil {
		in.Doctor = &services.DoctorProfileInput{
			RegistrationID:        req.Doctor.RegistrationID,
			DepartmentID:          req.Doctor.DepartmentID,
			CompletedTrainingYear: req.Doctor.CompletedTrainingYear,
			WorkingHours:          req.Doctor.WorkingHours,
		}
	}
	out, err := h.Accounts.CreateStaff(c.Request.Context(), a, in)
	respond(c, out, err)
}

func (h *Handlers) FetchStaff(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "staffId")
	if !ok {
		return
	}
	out, err := h.Accounts.FetchStaff(c.Request.Context(), a, id)
	respond(c, out, err)
}

func (h *Handlers) ListStaff(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var q listStaffQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Accounts.ListStaff(c.Request.Context(), a, q.Role)
	respond(c, out, err)
}

func (h *Handlers) ArchiveStaff(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "staffId")
	if !ok {
		return
	}
	out, err := h.Accounts.ArchiveStaff(c.Request.Context(), a, id)
	respond(c, out, err)
}
