package models

import "time"

const ReportStatusGenerated = "generated"

type Report struct {
	ID            int64     `json:"id" bson:"id"`
	ClientID      int64     `json:"clientId" bson:"clientId"`
	AppointmentID int64     `json:"appointmentId" bson:"appointmentId"`
	Body          string    `json:"body" bson:"body"`
	Status        string    `json:"status" bson:"status"`
	ViewCount     int       `json:"viewCount" bson:"viewCount"`
	IsArchived    bool      `json:"isArchived" bson:"isArchived"`
	CreatedBy     int64     `json:"createdBy" bson:"createdBy"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}
