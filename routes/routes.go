package routes

import (
	"github.com/gin-gonic/gin"

	"RoboScan360/controllers"
)

func Routes(r *gin.Engine, h *controllers.Handlers) {

	//public
	h.Login(r)
	//privateroutes
	private := r.Group("", h.Auth.JWTAuth())
	h.Staff(private)
	h.Client(private)
	h.Branch(private)
	h.Patient(private)
	h.Appointment(private)
	h.Report(private)
}
