package models

import "time"

type WorkingHours struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

type DoctorProfile struct {
	ID                    int64         `json:"id" bson:"id"`
	RegistrationID        string        `json:"registrationId" bson:"registrationId"`
	DepartmentID          int64         `json:"departmentId" bson:"departmentId"`
	CompletedTrainingYear int           `json:"completedTrainingYear" bson:"completedTrainingYear"`
	WorkingHours          *WorkingHours `json:"workingHours,omitempty" bson:"workingHours,omitempty"`
	// Approval is granted at creation; there is no verification workflow.
	IsApproved bool      `json:"isApproved" bson:"isApproved"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
