package models

import (
	"time"

	"RoboScan360/role"
)

// Staff is any non-patient user. Doctors carry a DoctorProfileID, every
// other role leaves it nil.
type Staff struct {
	ID              int64     `json:"id" bson:"id"`
	ClientID        int64     `json:"clientId" bson:"clientId"`
	BranchID        *int64    `json:"branchId" bson:"branchId"`
	Name            string    `json:"name" bson:"name"`
	Email           string    `json:"email" bson:"email"`
	PhoneNo         string    `json:"phoneNo" bson:"phoneNo"`
	Password        string    `json:"-" bson:"password"`
	Role            role.Role `json:"role" bson:"role"`
	DoctorProfileID *int64    `json:"doctorProfileId" bson:"doctorProfileId"`
	IsArchived      bool      `json:"isArchived" bson:"isArchived"`
	CreatedBy       *int64    `json:"createdBy" bson:"createdBy"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}
