package models

import "time"

const (
	StatusUpComing  = "up_coming"
	StatusCompleted = "completed"

	TypeNormalAppointment = "normal_appointment"
)

// ConferenceLinks is the meeting pair issued by the conferencing provider.
type ConferenceLinks struct {
	MeetingURL   string `json:"meetingUrl" bson:"meetingUrl"`
	ModeratorURL string `json:"moderatorUrl" bson:"moderatorUrl"`
}

type Appointment struct {
	ID                    int64  `json:"id" bson:"id"`
	ClientID              int64  `json:"clientId" bson:"clientId"`
	OpID                  string `json:"opId,omitempty" bson:"opId,omitempty"`
	BillingID             string `json:"billingId,omitempty" bson:"billingId,omitempty"`
	ScanReferenceID       string `json:"scanReferenceId,omitempty" bson:"scanReferenceId,omitempty"`
	PatientID             int64  `json:"patientId" bson:"patientId"`
	DoctorID              int64  `json:"doctorId" bson:"doctorId"`
	BranchID              int64  `json:"branchId" bson:"branchId"`
	RobotID               int64  `json:"robotId" bson:"robotId"`
	Date                  string `json:"date" bson:"date"`
	Time                  string `json:"time" bson:"time"`
	ScanType              string `json:"scanType" bson:"scanType"`
	DifferentialDiagnosis string `json:"differentialDiagnosis" bson:"differentialDiagnosis"`
	Status                string `json:"status" bson:"status"`
	Type                  string `json:"type" bson:"type"`
	CreatedBy             int64  `json:"createdBy" bson:"createdBy"`
	IsReportSent          bool   `json:"isReportSent" bson:"isReportSent"`
	// Conference is nil when provisioning degraded.
	Conference *ConferenceLinks `json:"conference" bson:"conference"`
	CreatedAt  time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt" bson:"updatedAt"`
}
