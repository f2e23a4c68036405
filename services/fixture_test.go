package services

import (
	"testing"
	"time"

	"RoboScan360/models"
	"RoboScan360/role"
)

const (
	clientA int64 = 1
	clientB int64 = 2

	superAdminA  int64 = 9
	adminA       int64 = 10
	sysAdminA    int64 = 11
	doctorA      int64 = 12
	archivedA    int64 = 13
	secondDoctor int64 = 14
	adminB       int64 = 20
	doctorB      int64 = 22

	branchA1 int64 = 100
	branchA2 int64 = 101
	branchB1 int64 = 200

	robotA1 int64 = 500
	robotA2 int64 = 501
	robotB1 int64 = 600

	departmentRadiology int64 = 50
)

var fixedNow = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	db          *memoryDB
	gateway     *stubGateway
	roles       role.Config
	directory   *Directory
	appointment *AppointmentService
	patients    *PatientService
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWith(t, AppointmentOptions{})
}

func newFixtureWith(t *testing.T, opts AppointmentOptions) *fixture {
	t.Helper()
	db := newMemoryDB()
	seed(db)

	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	f := &fixture{db: db, gateway: &stubGateway{}, roles: role.DefaultConfig()}
	stores := db.stores()
	f.directory = NewDirectory(stores.Staff, f.roles)
	f.appointment = NewAppointmentService(stores, f.directory, f.gateway, nil, nil, opts)
	f.patients = NewPatientService(stores.Patients, f.directory, nil)
	return f
}

func int64Ptr(v int64) *int64 { return &v }

func seed(db *memoryDB) {
	db.clients[clientA] = models.Client{
		ID:          clientA,
		Name:        "City Hospital",
		ScanTypes:   []string{"Ultrasound", "MRI"},
		Departments: []models.Department{{ID: departmentRadiology, Name: "Radiology"}, {ID: 51, Name: "Closed", IsArchived: true}},
	}
	db.clients[clientB] = models.Client{ID: clientB, Name: "Lake Clinic", ScanTypes: []string{"CT"}}

	db.profiles[700] = models.DoctorProfile{ID: 700, RegistrationID: "REG-700", DepartmentID: departmentRadiology, IsApproved: true}
	db.profiles[701] = models.DoctorProfile{ID: 701, RegistrationID: "REG-701", DepartmentID: departmentRadiology, IsApproved: true}
	db.profiles[702] = models.DoctorProfile{ID: 702, RegistrationID: "REG-702", IsApproved: true}

	db.staff[superAdminA] = models.Staff{ID: superAdminA, ClientID: clientA, Name: "Root", Email: "root@a.test", Role: role.SuperAdmin}
	db.staff[adminA] = models.Staff{ID: adminA, ClientID: clientA, Name: "Asha", Email: "asha@a.test", Role: role.Admin, CreatedBy: int64Ptr(superAdminA)}
	db.staff[sysAdminA] = models.Staff{ID: sysAdminA, ClientID: clientA, BranchID: int64Ptr(branchA1), Name: "Sam", Email: "sam@a.test", Role: role.SystemAdmin}
	db.staff[doctorA] = models.Staff{ID: doctorA, ClientID: clientA, Name: "Dr. Rao", Email: "rao@a.test", Role: role.Doctor, DoctorProfileID: int64Ptr(700)}
	db.staff[archivedA] = models.Staff{ID: archivedA, ClientID: clientA, Name: "Gone", Email: "gone@a.test", Role: role.Admin, IsArchived: true}
	db.staff[secondDoctor] = models.Staff{ID: secondDoctor, ClientID: clientA, Name: "Dr. Iyer", Email: "iyer@a.test", Role: role.Doctor, DoctorProfileID: int64Ptr(701)}
	db.staff[adminB] = models.Staff{ID: adminB, ClientID: clientB, Name: "Ben", Email: "ben@b.test", Role: role.Admin}
	db.staff[doctorB] = models.Staff{ID: doctorB, ClientID: clientB, Name: "Dr. Khan", Email: "khan@b.test", Role: role.Doctor, DoctorProfileID: int64Ptr(702)}

	db.branches[branchA1] = models.Branch{ID: branchA1, ClientID: clientA, Name: "North"}
	db.branches[branchA2] = models.Branch{ID: branchA2, ClientID: clientA, Name: "South"}
	db.branches[branchB1] = models.Branch{ID: branchB1, ClientID: clientB, Name: "Lakeside"}

	db.robots[robotA1] = models.Robot{ID: robotA1, RegistrationID: "RB-1", BranchID: branchA1}
	db.robots[robotA2] = models.Robot{ID: robotA2, RegistrationID: "RB-2", BranchID: branchA2}
	db.robots[robotB1] = models.Robot{ID: robotB1, RegistrationID: "RB-3", BranchID: branchB1}
}

func admin(id int64) models.Actor {
	return models.Actor{ID: id, Role: role.Admin}
}

func newPatientFields() PatientFields {
	return PatientFields{
		Name:         "Meera Nair",
		MobileNumber: "9876543210",
		Email:        "meera@example.com",
		Gender:       "female",
		Age:          34,
		PinCode:      "560001",
		Address:      "12 MG Road",
	}
}

// validCreate books doctorA on robotA1 in branchA1 for a new patient.
func validCreate() CreateAppointmentInput {
	return CreateAppointmentInput{
		Patient:               newPatientFields(),
		DoctorID:              doctorA,
		BranchID:              branchA1,
		RobotID:               robotA1,
		Date:                  "2026-03-10",
		Time:                  "10:30 AM",
		ScanType:              "Ultrasound",
		DifferentialDiagnosis: "abdominal pain",
	}
}

func validEdit() EditAppointmentInput {
	return EditAppointmentInput{
		BranchID:              branchA2,
		RobotID:               robotA2,
		DoctorID:              secondDoctor,
		Date:                  "2026-03-12",
		Time:                  "02:15 PM",
		ScanType:              "MRI",
		DifferentialDiagnosis: "follow up",
	}
}
