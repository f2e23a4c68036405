package models

import "time"

type Department struct {
	ID         int64  `json:"id" bson:"id"`
	Name       string `json:"name" bson:"name"`
	IsArchived bool   `json:"isArchived" bson:"isArchived"`
}

type ReportTemplate struct {
	ID         int64  `json:"id" bson:"id"`
	Name       string `json:"name" bson:"name"`
	Body       string `json:"body" bson:"body"`
	IsArchived bool   `json:"isArchived" bson:"isArchived"`
}

// Client is a hospital tenant. Its catalogs bound what appointments and
// doctor profiles may reference.
type Client struct {
	ID              int64            `json:"id" bson:"id"`
	Name            string           `json:"name" bson:"name"`
	ScanTypes       []string         `json:"scanTypes" bson:"scanTypes"`
	Departments     []Department     `json:"departments" bson:"departments"`
	ReportTemplates []ReportTemplate `json:"reportTemplates" bson:"reportTemplates"`
	CreatedAt       time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt" bson:"updatedAt"`
}

func (c *Client) HasScanType(scanType string) bool {
	for _, s := range c.ScanTypes {
		if s == scanType {
			return true
		}
	}
	return false
}

func (c *Client) ActiveDepartment(id int64) bool {
	for _, d := range c.Departments {
		if d.ID == id && !d.IsArchived {
			return true
		}
	}
	return false
}
