package util

const (
	ClientCollection        = "CLIENTS"
	StaffCollection         = "STAFF"
	DoctorProfileCollection = "DOCTOR_PROFILES"
	BranchCollection        = "BRANCHES"
	RobotCollection         = "ROBOTS"
	PatientCollection       = "PATIENTS"
	AppointmentCollection   = "APPOINTMENTS"
	ReportCollection        = "REPORTS"
	CounterCollection       = "COUNTERS"
)

// Cache key prefixes, suffixed with the record id.
const (
	AppointmentKey = "APPOINTMENT:"
	ClientKey      = "CLIENT:"
	PatientKey     = "PATIENT:"
)

// Context keys set by the authorization middleware.
const (
	ActorIDKey   = "actorId"
	ActorRoleKey = "actorRole"
)
