package models

import "RoboScan360/role"

// Actor is the authenticated staff member behind a request.
type Actor struct {
	ID   int64     `json:"id"`
	Role role.Role `json:"role"`
}
