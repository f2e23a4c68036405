package models

import "time"

type Branch struct {
	ID            int64     `json:"id" bson:"id"`
	ClientID      int64     `json:"clientId" bson:"clientId"`
	Name          string    `json:"name" bson:"name"`
	ContactNumber string    `json:"contactNumber" bson:"contactNumber"`
	Location      string    `json:"location" bson:"location"`
	PinCode       string    `json:"pinCode" bson:"pinCode"`
	SystemAdmins  []int64   `json:"systemAdmins" bson:"systemAdmins"`
	CreatedBy     int64     `json:"createdBy" bson:"createdBy"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Robot struct {
	ID                 int64     `json:"id" bson:"id"`
	RegistrationID     string    `json:"registrationId" bson:"registrationId"`
	BranchID           int64     `json:"branchId" bson:"branchId"`
	IsUnderMaintenance bool      `json:"isUnderMaintenance" bson:"isUnderMaintenance"`
	CreatedBy          int64     `json:"createdBy" bson:"createdBy"`
	CreatedAt          time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updatedAt"`
}
