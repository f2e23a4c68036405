package models

// PatientLookup matches a patient by id within a client, optionally also by
// op id.
type PatientLookup struct {
	ID       int64
	ClientID int64
	OpID     string
}

type PatientUpdate struct {
	MobileNumber   *string `json:"mobileNumber,omitempty"`
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	Age            *int    `json:"age,omitempty"`
	PinCode        *string `json:"pinCode,omitempty"`
	EID            *string `json:"eId,omitempty"`
	Address        *string `json:"address,omitempty"`
	ActionRequired *bool   `json:"actionRequired,omitempty"`
}

func (u PatientUpdate) Empty() bool {
	return u.MobileNumber == nil && u.Name == nil && u.Email == nil && u.Gender == nil &&
		u.Age == nil && u.PinCode == nil && u.EID == nil && u.Address == nil && u.ActionRequired == nil
}

// AppointmentEdit is the full replacement field set written by an edit.
type AppointmentEdit struct {
	BranchID              int64
	RobotID               int64
	DoctorID              int64
	Date                  string
	Time                  string
	ScanType              string
	DifferentialDiagnosis string
	BillingID             string
	Conference            *ConferenceLinks
}

type AppointmentFilter struct {
	ClientID int64
	DoctorID int64
	BranchID int64
	Status   string
	Date     string
}
