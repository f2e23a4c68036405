package models

import "time"

type Patient struct {
	ID             int64     `json:"id" bson:"id"`
	ClientID       int64     `json:"clientId" bson:"clientId"`
	OpID           string    `json:"opId,omitempty" bson:"opId,omitempty"`
	MobileNumber   string    `json:"mobileNumber" bson:"mobileNumber"`
	Name           string    `json:"name" bson:"name"`
	Email          string    `json:"email,omitempty" bson:"email,omitempty"`
	Gender         string    `json:"gender" bson:"gender"`
	Age            int       `json:"age" bson:"age"`
	PinCode        string    `json:"pinCode" bson:"pinCode"`
	EID            string    `json:"eId,omitempty" bson:"eId,omitempty"`
	Address        string    `json:"address,omitempty" bson:"address,omitempty"`
	ActionRequired bool      `json:"actionRequired" bson:"actionRequired"`
	IsArchived     bool      `json:"isArchived" bson:"isArchived"`
	CreatedBy      int64     `json:"createdBy" bson:"createdBy"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}
