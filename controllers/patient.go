package controllers

import (
	"github.com/gin-gonic/gin"

	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/services"
)

func (h *Handlers) Patient(router gin.IRouter) {
	patient := router.Group("/patient")
	{
		patient.POST("/create", h.Auth.Authorize(role.ManagePatient), h.CreatePatient)
		patient.GET("/fetch/:patientId", h.Auth.Authorize(role.ViewPatient), h.FetchPatient)
		patient.GET("/fetchAll", h.Auth.Authorize(role.ViewPatient), h.ListPatients)
		patient.PATCH("/update/:patientId", h.Auth.Authorize(role.ManagePatient), h.UpdatePatient)
		patient.DELETE("/delete/:patientId", h.Auth.Authorize(role.ManagePatient), h.ArchivePatient)
	}
}

type createPatientRequest struct {
	OpID         string `json:"opId" binding:"omitempty,max=64"`
	Name         string `json:"name" binding:"required,max=100"`
	MobileNumber string `json:"mobileNumber" binding:"required,numeric,min=7,max=15"`
	Email        string `json:"email" binding:"omitempty,email"`
	Gender       string `json:"gender" binding:"required,oneof=male female other"`
	Age          int    `json:"age" binding:"omitempty,min=0,max=150"`
	PinCode      string `json:"pinCode" binding:"required,numeric,len=6"`
	EID          string `json:"eId" binding:"omitempty,max=64"`
	Address      string `json:"address" binding:"omitempty,max=250"`
}

type updatePatientRequest struct {
	MobileNumber   *string `json:"mobileNumber" binding:"omitempty,numeric,min=7,max=15"`
	Name           *string `json:"name" binding:"omitempty,max=100"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Gender         *string `json:"gender" binding:"omitempty,oneof=male female other"`
	Age            *int    `json:"age" binding:"omitempty,min=0,max=150"`
	PinCode        *string `json:"pinCode" binding:"omitempty,numeric,len=6"`
	EID            *string `json:"eId" binding:"omitempty,max=64"`
	Address        *string `json:"address" binding:"omitempty,max=250"`
	ActionRequired *bool   `json:"actionRequired"`
}

/*
* Bind JSON
* And Pass to the service
 */
func (h *Handlers) CreatePatient(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req createPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Patients.CreatePatient(c.Request.Context(), a, services.CreatePatientInput{
		OpID: req.OpID,
		PatientFields: services.PatientFields{
			Name:         req.Name,
			MobileNumber: req.MobileNumber,
			Email:        req.Email,
			Gender:       req.Gender,
			Age:          req.Age,
			PinCode:      req.PinCode,
			EID:          req.EID,
			Address:      req.Address,
		},
	})
	respond(c, out, err)
}

func (h *Handlers) FetchPatient(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "patientId")
	if !ok {
		return
	}
	out, err := h.Patients.FetchPatient(c.Request.Context(), a, id)
	respond(c, out, err)
}

func (h *Handlers) ListPatients(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	out, err := h.Patients.ListPatients(c.Request.Context(), a)
	respond(c, out, err)
}

/*
* Only the fields present in the body are written
 */
func (h *Handlers) UpdatePatient(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "patientId")
	if !ok {
		return
	}
	var req updatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	out, err := h.Patients.UpdatePatient(c.Request.Context(), a, id, models.PatientUpdate{
		MobileNumber:   req.MobileNumber,
		Name:           req.Name,
		Email:          req.Email,
		Gender:         req.Gender,
		Age:            req.Age,
		PinCode:        req.PinCode,
		EID:            req.EID,
		Address:        req.Address,
		ActionRequired: req.ActionRequired,
	})
	respond(c, out, err)
}

func (h *Handlers) ArchivePatient(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "patientId")
	if !ok {
		return
	}
	out, err := h.Patients.ArchivePatient(c.Request.Context(), a, id)
	respond(c, out, err)
}
