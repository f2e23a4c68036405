package util

import (
	"errors"
	"net/http"
)

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func SuccessResponse(message string, data interface{}) Response {
	if data == nil {
		data = map[string]interface{}{}
	}
	return Response{Status: true, Message: message, Data: data}
}

/*
* Domain errors keep their message
* Anything else is reported as internal server error so driver and
* runtime details never reach the client
 */
func FailedResponse(err error) Response {
	message := INTERNAL_SERVER_ERROR
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal && appErr.Kind != KindConstraintViolation {
		message = appErr.Message
	}
	return Response{Status: false, Message: message, Data: map[string]interface{}{}}
}

func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return KindOf(err).HTTPStatus()
}

// Outcome is what a service hands back on success, before it is wrapped
// into a Response.
type Outcome struct {
	Message string
	Data    interface{}
}

func (o *Outcome) Response() Response {
	return SuccessResponse(o.Message, o.Data)
}
