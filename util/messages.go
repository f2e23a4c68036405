package util

const (
	INTERNAL_SERVER_ERROR = "internal server error"
	INVALID_REQUEST_BODY  = "invalid request body"
	INVALID_ID_PARAM      = "invalid id in path"

	USER_NOT_FOUND           = "user not found"
	USER_DOESNOT_HAVE_ACCESS = "user does not have access to perform this action"
	MISSING_AUTH_TOKEN       = "authorization token missing"
	INVALID_AUTH_TOKEN       = "authorization token invalid or expired"
	INVALID_CREDENTIALS      = "invalid email or password"

	DOCTOR_NOT_FOUND      = "doctor not found"
	BRANCH_NOT_FOUND      = "branch not found"
	ROBOT_NOT_FOUND       = "robot not found"
	CLIENT_NOT_FOUND      = "client not found"
	APPOINTMENT_NOT_FOUND = "appointment not found"
	PATIENT_NOT_FOUND     = "patient not found"
	REPORT_NOT_FOUND      = "report not found"
	STAFF_NOT_FOUND       = "staff not found"
	DEPARTMENT_NOT_FOUND  = "department not found"
	TEMPLATE_NOT_FOUND    = "report template not found"

	BILLING_ID_ALREADY_EXISTS    = "appointment with this billing id already exists"
	OP_ID_ALREADY_EXISTS         = "patient with this op id already exists"
	INVALID_SCAN_TYPE            = "scan type is not available for this client"
	SCAN_TYPE_ALREADY_EXISTS     = "scan type already exists"
	INVALID_DATE_OR_TIME         = "appointment date and time must be in the future"
	INVALID_DATE_FORMAT          = "date must be a valid calendar date in YYYY-MM-DD format"
	INVALID_TIME_FORMAT          = "time must be in hh:mm AM/PM format"
	APPOINTMENT_NOT_EDITABLE     = "appointment can no longer be edited"
	REPORT_ALREADY_EXISTS        = "report already exists for this appointment"
	RECORD_ALREADY_EXISTS        = "record already exists"
	INVALID_ROLE                 = "invalid role"
	STAFF_NOT_SYSTEM_ADMIN       = "staff is not a system admin of this client"
	NO_FIELDS_PROVIDED_TO_UPDATE = "no fields provided to update"
	EMAIL_ALREADY_EXISTS         = "staff with this email already exists"
	DOCTOR_PROFILE_REQUIRED      = "doctor profile is required for doctor role"
	BRANCH_REQUIRED              = "branch is required for this role"
)
