package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"RoboScan360/config/authorization"
	"RoboScan360/models"
	"RoboScan360/services"
	"RoboScan360/util"
)

// Handlers holds the services every route group dispatches to.
type Handlers struct {
	Auth         *authorization.Authenticator
	Appointments *services.AppointmentService
	Patients     *services.PatientService
	Accounts     *services.StaffService
	Clients      *services.ClientService
	Branches     *services.BranchService
	Robots       *services.RobotService
	Reports      *services.ReportService
}

/*
* Register calendardate and clock12h on gin's validator
* Report json field names in validation errors
 */
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	if err := v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, _, _, err := services.ParseCalendarDate(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("clock12h", func(fl validator.FieldLevel) bool {
		return services.IsClock12h(fl.Field().String())
	})
}

// bindError turns a binding failure into an Invalid error naming the first
// offending field.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "calendardate":
			return util.WrapError(util.KindInvalid, util.INVALID_DATE_FORMAT, err)
		case "clock12h":
			return util.WrapError(util.KindInvalid, util.INVALID_TIME_FORMAT, err)
		}
		return util.WrapError(util.KindInvalid, fmt.Sprintf("%s failed on the %s rule", fe.Field(), fe.Tag()), err)
	}
	return util.WrapError(util.KindInvalid, util.INVALID_REQUEST_BODY, err)
}

func respond(c *gin.Context, out *util.Outcome, err error) {
	if err != nil {
		c.JSON(util.StatusCode(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, out.Response())
}

func fail(c *gin.Context, err error) {
	c.JSON(util.StatusCode(err), util.FailedResponse(err))
}

// actor reads the authenticated actor placed by JWTAuth.
func actor(c *gin.Context) (models.Actor, bool) {
	a, ok := authorization.ActorFromContext(c)
	if !ok {
		fail(c, util.NewError(util.KindActorNotFound, util.MISSING_AUTH_TOKEN))
	}
	return a, ok
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, util.NewError(util.KindInvalid, util.INVALID_ID_PARAM))
		return 0, false
	}
	return id, true
}
