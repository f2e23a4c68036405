package controllers

import (
	"github.com/gin-gonic/gin"

	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/services"
)

func (h *Handlers) Appointment(router gin.IRouter) {
	appointment := router.Group("/appointment")
	{
		appointment.POST("/create", h.Auth.Authorize(role.CreateAppointment), h.CreateAppointment)
		appointment.PUT("/update/:appointmentId", h.Auth.Authorize(role.UpdateAppointment), h.EditAppointment)
		appointment.PATCH("/reschedule/:appointmentId", h.Auth.Authorize(role.UpdateAppointment), h.RescheduleAppointment)
		appointment.GET("/fetch/:appointmentId", h.Auth.Authorize(role.ViewAppointment), h.FetchAppointment)
		appointment.GET("/fetchAll", h.Auth.Authorize(role.ViewAppointment), h.ListAppointments)
		appointment.DELETE("/delete/:appointmentId", h.Auth.Authorize(role.CancelAppointment), h.CancelAppointment)
	}
}

// Patient fields are required only when no patientId is given.
type createAppointmentRequest struct {
	PatientID             *int64 `json:"patientId" binding:"omitempty,gt=0"`
	OpID                  string `json:"opId" binding:"omitempty,max=64"`
	Name                  string `json:"name" binding:"required_without=PatientID,omitempty,max=100"`
	MobileNumber          string `json:"mobileNumber" binding:"required_without=PatientID,omitempty,numeric,min=7,max=15"`
	Email                 string `json:"email" binding:"omitempty,email"`
	Gender                string `json:"gender" binding:"required_without=PatientID,omitempty,oneof=male female other"`
	Age                   int    `json:"age" binding:"omitempty,min=0,max=150"`
	PinCode               string `json:"pinCode" binding:"required_without=PatientID,omitempty,numeric,len=6"`
	EID                   string `json:"eId" binding:"omitempty,max=64"`
	Address               string `json:"address" binding:"omitempty,max=250"`
	DoctorID              int64  `json:"doctorId" binding:"required,gt=0"`
	BranchID              int64  `json:"branchId" binding:"required,gt=0"`
	RobotID               int64  `json:"robotId" binding:"required,gt=0"`
	Date                  string `json:"date" binding:"required,calendardate"`
	Time                  string `json:"time" binding:"required,clock12h"`
	ScanType              string `json:"scanType" binding:"required,max=64"`
	DifferentialDiagnosis string `json:"differentialDiagnosis" binding:"required,max=1000"`
	BillingID             string `json:"billingId" binding:"omitempty,max=64"`
	ScanReferenceID       string `json:"scanReferenceId" binding:"omitempty,max=64"`
}

type editAppointmentRequest struct {
	BranchID              int64  `json:"branchId" binding:"required,gt=0"`
	RobotID               int64  `json:"robotId" binding:"required,gt=0"`
	DoctorID              int64  `json:"doctorId" binding:"required,gt=0"`
	Date                  string `json:"date" binding:"required,calendardate"`
	Time                  string `json:"time" binding:"required,clock12h"`
	ScanType              string `json:"scanType" binding:"required,max=64"`
	DifferentialDiagnosis string `json:"differentialDiagnosis" binding:"required,max=1000"`
	BillingID             string `json:"billingId" binding:"omitempty,max=64"`
}

type rescheduleRequest struct {
	Date       string `json:"date" binding:"required,calendardate"`
	Time       string `json:"time" binding:"required,clock12h"`
	DoctorName string `json:"doctorName" binding:"required,max=100"`
}

type listAppointmentsQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=up_coming completed"`
	Date     string `form:"date" binding:"omitempty,calendardate"`
	BranchID int64  `form:"branchId" binding:"omitempty,gt=0"`
	DoctorID int64  `form:"doctorId" binding:"omitempty,gt=0"`
}

/*
* Bind and validate the body
* Pass to the service
 */
func (h *Handlers) CreateAppointment(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Appointments.CreateAppointment(c.Request.Context(), a, services.CreateAppointmentInput{
		PatientID: req.PatientID,
		OpID:      req.OpID,
		Patient: services.PatientFields{
			Name:         req.Name,
			MobileNumber: req.MobileNumber,
			Email:        req.Email,
			Gender:       req.Gender,
			Age:          req.Age,
			PinCode:      req.PinCode,
			EID:          req.EID,
			Address:      req.Address,
		},
		DoctorID:              req.DoctorID,
		BranchID:              req.BranchID,
		RobotID:               req.RobotID,
		Date:                  req.Date,
		Time:                  req.Time,
		ScanType:              req.ScanType,
		DifferentialDiagnosis: req.DifferentialDiagnosis,
		BillingID:             req.BillingID,
		ScanReferenceID:       req.ScanReferenceID,
	})
	respond(c, out, err)
}

/*
* Get appointmentId from param
* Bind the full replacement fields
* Pass to the service
 */
func (h *Handlers) EditAppointment(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "appointmentId")
	if !ok {
		return
	}
	var req editAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Appointments.EditAppointment(c.Request.Context(), a, id, services.EditAppointmentInput{
		BranchID:              req.BranchID,
		RobotID:               req.RobotID,
		DoctorID:              req.DoctorID,
		Date:                  req.Date,
		Time:                  req.Time,
		ScanType:              req.ScanType,
		DifferentialDiagnosis: req.DifferentialDiagnosis,
		BillingID:             req.BillingID,
	})
	respond(c, out, err)
}

func (h *Handlers) RescheduleAppointment(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "appointmentId")
	if !ok {
		return
	}
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Appointments.RescheduleAppointment(c.Request.Context(), a, id, services.RescheduleAppointmentInput{
		Date:       req.Date,
		Time:       req.Time,
		DoctorName: req.DoctorName,
	})
	respond(c, out, err)
}

func (h *Handlers) FetchAppointment(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "appointmentId")
	if !ok {
		return
	}
	out, err := h.Appointments.FetchAppointment(c.Request.Context(), a, id)
	respond(c, out, err)
}

func (h *Handlers) ListAppointments(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var q listAppointmentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Appointments.ListAppointments(c.Request.Context(), a, models.AppointmentFilter{
		Status:   q.Status,
		Date:     q.Date,
		BranchID: q.BranchID,
		DoctorID: q.DoctorID,
	})
	respond(c, out, err)
}

func (h *Handlers) CancelAppointment(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "appointmentId")
	if !ok {
		return
	}
	out, err := h.Appointments.CancelAppointment(c.Request.Context(), a, id)
	respond(c, out, err)
}
