package services

import (
	"context"

	"RoboScan360/models"
	"RoboScan360/role"
)

// The Find* methods of every store return (nil, nil) when no record
// matches; errors are reserved for storage failures.

type StaffStore interface {
	FindByID(ctx context.Context, id int64) (*models.Staff, error)
	FindByEmail(ctx context.Context, email string) (*models.Staff, error)
	FindInClient(ctx context.Context, id, clientID int64, r role.Role) (*models.Staff, error)
	DoctorName(ctx context.Context, staffID int64) (string, error)
	Create(ctx context.Context, staff *models.Staff) error
	List(ctx context.Context, clientID int64, r role.Role) ([]models.Staff, error)
	Archive(ctx context.Context, id, clientID int64) (bool, error)
}

type DoctorProfileStore interface {
	Create(ctx context.Context, profile *models.DoctorProfile) error
	FindByID(ctx context.Context, id int64) (*models.DoctorProfile, error)
	Delete(ctx context.Context, id int64) error
}

type ClientStore interface {
	FindByID(ctx context.Context, id int64) (*models.Client, error)
	AddScanType(ctx context.Context, id int64, scanType string) (*models.Client, error)
	RemoveScanType(ctx context.Context, id int64, scanType string) (*models.Client, error)
	AddDepartment(ctx context.Context, id int64, department models.Department) (*models.Client, error)
	ArchiveDepartment(ctx context.Context, id, departmentID int64) (*models.Client, error)
	AddReportTemplate(ctx context.Context, id int64, template models.ReportTemplate) (*models.Client, error)
	ArchiveReportTemplate(ctx context.Context, id, templateID int64) (*models.Client, error)
	NextCatalogID(ctx context.Context) (int64, error)
}

type BranchStore interface {
	FindInClient(ctx context.Context, id, clientID int64) (*models.Branch, error)
	Create(ctx context.Context, branch *models.Branch) error
	List(ctx context.Context, clientID int64) ([]models.Branch, error)
	AddSystemAdmin(ctx context.Context, id, clientID, staffID int64) (*models.Branch, error)
}

type RobotStore interface {
	FindInBranch(ctx context.Context, id, branchID int64) (*models.Robot, error)
	Create(ctx context.Context, robot *models.Robot) error
	ListByBranch(ctx context.Context, branchID int64) ([]models.Robot, error)
	SetMaintenance(ctx context.Context, id, branchID int64, underMaintenance bool) (*models.Robot, error)
}

type PatientStore interface {
	Create(ctx context.Context, patient *models.Patient) error
	FindOne(ctx context.Context, lookup models.PatientLookup) (*models.Patient, error)
	ExistsByOpID(ctx context.Context, opID string) (bool, error)
	List(ctx context.Context, clientID int64) ([]models.Patient, error)
	Update(ctx context.Context, id, clientID int64, update models.PatientUpdate) (*models.Patient, error)
	Archive(ctx context.Context, id, clientID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	ExistsByBillingID(ctx context.Context, billingID string, excludeID int64) (bool, error)
	FindInClient(ctx context.Context, id, clientID int64) (*models.Appointment, error)
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	Replace(ctx context.Context, id, clientID int64, edit models.AppointmentEdit) (*models.Appointment, error)
	Reschedule(ctx context.Context, id, clientID int64, date, time string, conference *models.ConferenceLinks) (*models.Appointment, error)
	DeleteInClient(ctx context.Context, id, clientID int64) (*models.Appointment, error)
	ListMissingConference(ctx context.Context) ([]models.Appointment, error)
	SetConference(ctx context.Context, id int64, conference *models.ConferenceLinks) error
	MarkReportSent(ctx context.Context, id int64) error
}

type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	ExistsForAppointment(ctx context.Context, appointmentID int64) (bool, error)
	FindAndCountView(ctx context.Context, id, clientID int64) (*models.Report, error)
	Archive(ctx context.Context, id, clientID int64) (bool, error)
}

// Stores bundles the persistence collaborators the services depend on.
type Stores struct {
	Staff        StaffStore
	Profiles     DoctorProfileStore
	Clients      ClientStore
	Branches     BranchStore
	Robots       RobotStore
	Patients     PatientStore
	Appointments AppointmentStore
	Reports      ReportStore
}
