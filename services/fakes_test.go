package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/util"
)

// memoryDB backs every fake store. Records are copied in and out so tests
// observe what a real database would hold.
type memoryDB struct {
	mu     sync.Mutex
	nextID int64

	staff        map[int64]models.Staff
	profiles     map[int64]models.DoctorProfile
	clients      map[int64]models.Client
	branches     map[int64]models.Branch
	robots       map[int64]models.Robot
	patients     map[int64]models.Patient
	appointments map[int64]models.Appointment
	reports      map[int64]models.Report

	failAppointmentCreate error
	failStaffCreate       error
	failPatientDelete     error
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		nextID:       1000,
		staff:        map[int64]models.Staff{},
		profiles:     map[int64]models.DoctorProfile{},
		clients:      map[int64]models.Client{},
		branches:     map[int64]models.Branch{},
		robots:       map[int64]models.Robot{},
		patients:     map[int64]models.Patient{},
		appointments: map[int64]models.Appointment{},
		reports:      map[int64]models.Report{},
	}
}

func (m *memoryDB) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryDB) stores() Stores {
	return Stores{
		Staff:        &memoryStaff{m},
		Profiles:     &memoryProfiles{m},
		Clients:      &memoryClients{m},
		Branches:     &memoryBranches{m},
		Robots:       &memoryRobots{m},
		Patients:     &memoryPatients{m},
		Appointments: &memoryAppointments{m},
		Reports:      &memoryReports{m},
	}
}

func (m *memoryDB) appointmentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appointments)
}

func (m *memoryDB) patientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.patients)
}

func (m *memoryDB) appointment(id int64) (models.Appointment, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	return a, ok
}

var errDuplicate = util.NewError(util.KindConstraintViolation, util.RECORD_ALREADY_EXISTS)

type memoryStaff struct{ m *memoryDB }

func (s *memoryStaff) FindByID(ctx context.Context, id int64) (*models.Staff, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	st, ok := s.m.staff[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (s *memoryStaff) FindByEmail(ctx context.Context, email string) (*models.Staff, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, st := range s.m.staff {
		if st.Email == email {
			return &st, nil
		}
	}
	return nil, nil
}

func (s *memoryStaff) FindInClient(ctx context.Context, id, clientID int64, r role.Role) (*models.Staff, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	st, ok := s.m.staff[id]
	if !ok || st.ClientID != clientID || st.Role != r || st.IsArchived {
		return nil, nil
	}
	return &st, nil
}

func (s *memoryStaff) DoctorName(ctx context.Context, staffID int64) (string, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	st, ok := s.m.staff[staffID]
	if !ok || st.DoctorProfileID == nil {
		return "", nil
	}
	if _, ok := s.m.profiles[*st.DoctorProfileID]; !ok {
		return "", nil
	}
	return st.Name, nil
}

func (s *memoryStaff) Create(ctx context.Context, staff *models.Staff) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.failStaffCreate != nil {
		return s.m.failStaffCreate
	}
	staff.ID = s.m.id()
	s.m.staff[staff.ID] = *staff
	return nil
}

func (s *memoryStaff) List(ctx context.Context, clientID int64, r role.Role) ([]models.Staff, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Staff
	for _, st := range s.m.staff {
		if st.ClientID == clientID && !st.IsArchived && (r == "" || st.Role == r) {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStaff) Archive(ctx context.Context, id, clientID int64) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	st, ok := s.m.staff[id]
	if !ok || st.ClientID != clientID || st.IsArchived {
		return false, nil
	}
	st.IsArchived = true
	s.m.staff[id] = st
	return true, nil
}

type memoryProfiles struct{ m *memoryDB }

func (p *memoryProfiles) Create(ctx context.Context, profile *models.DoctorProfile) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	for _, existing := range p.m.profiles {
		if existing.RegistrationID == profile.RegistrationID {
			return errDuplicate
		}
	}
	profile.ID = p.m.id()
	p.m.profiles[profile.ID] = *profile
	return nil
}

func (p *memoryProfiles) FindByID(ctx context.Context, id int64) (*models.DoctorProfile, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	profile, ok := p.m.profiles[id]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (p *memoryProfiles) Delete(ctx context.Context, id int64) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	delete(p.m.profiles, id)
	return nil
}

type memoryClients struct{ m *memoryDB }

func (c *memoryClients) FindByID(ctx context.Context, id int64) (*models.Client, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	client, ok := c.m.clients[id]
	if !ok {
		return nil, nil
	}
	return &client, nil
}

func (c *memoryClients) update(id int64, fn func(*models.Client) bool) (*models.Client, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	client, ok := c.m.clients[id]
	if !ok || !fn(&client) {
		return nil, nil
	}
	c.m.clients[id] = client
	return &client, nil
}

func (c *memoryClients) AddScanType(ctx context.Context, id int64, scanType string) (*models.Client, error) {
	return c.update(id, func(client *models.Client) bool {
		if !client.HasScanType(scanType) {
			client.ScanTypes = append(append([]string{}, client.ScanTypes...), scanType)
		}
		return true
	})
}

func (c *memoryClients) RemoveScanType(ctx context.Context, id int64, scanType string) (*models.Client, error) {
	return c.update(id, func(client *models.Client) bool {
		kept := []string{}
		for _, s := range client.ScanTypes {
			if s != scanType {
				kept = append(kept, s)
			}
		}
		client.ScanTypes = kept
		return true
	})
}

func (c *memoryClients) AddDepartment(ctx context.Context, id int64, department models.Department) (*models.Client, error) {
	return c.update(id, func(client *models.Client) bool {
		client.Departments = append(append([]models.Department{}, client.Departments...), department)
		return true
	})
}

func (c *memoryClients) ArchiveDepartment(ctx context.Context, id, departmentID int64) (*models.Client, error) {
	return c.update(id, func(client *models.Client) bool {
		departments := append([]models.Department{}, client.Departments...)
		for i := range departments {
			if departments[i].ID == departmentID {
				departments[i].IsArchived = true
				client.Departments = departments
				return true
			}
		}
		return false
	})
}

func (c *memoryClients) AddReportTemplate(ctx context.Context, id int64, template models.ReportTemplate) (*models.Client, error) {
	return c.update(id, func(client *models.Client) bool {
		client.ReportTemplates = append(append([]models.ReportTemplate{}, client.ReportTemplates...), template)
		return true
	})
}

func (c *memoryClients) ArchiveReportTemplate(ctx context.Context, id, templateID int64) (*models.Client, error) {
	return c.update(id, func(client *models.Client) bool {
		templates := append([]models.ReportTemplate{}, client.ReportTemplates...)
		for i := range templates {
			if templates[i].ID == templateID {
				templates[i].IsArchived = true
				client.ReportTemplates = templates
				return true
			}
		}
		return false
	})
}

func (c *memoryClients) NextCatalogID(ctx context.Context) (int64, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	return c.m.id(), nil
}

type memoryBranches struct{ m *memoryDB }

func (b *memoryBranches) FindInClient(ctx context.Context, id, clientID int64) (*models.Branch, error) {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	branch, ok := b.m.branches[id]
	if !ok || branch.ClientID != clientID {
		return nil, nil
	}
	return &branch, nil
}

func (b *memoryBranches) Create(ctx context.Context, branch *models.Branch) error {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	branch.ID = b.m.id()
	b.m.branches[branch.ID] = *branch
	return nil
}

func (b *memoryBranches) List(ctx context.Context, clientID int64) ([]models.Branch, error) {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	var out []models.Branch
	for _, branch := range b.m.branches {
		if branch.ClientID == clientID {
			out = append(out, branch)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *memoryBranches) AddSystemAdmin(ctx context.Context, id, clientID, staffID int64) (*models.Branch, error) {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	branch, ok := b.m.branches[id]
	if !ok || branch.ClientID != clientID {
		return nil, nil
	}
	for _, existing := range branch.SystemAdmins {
		if existing == staffID {
			return &branch, nil
		}
	}
	branch.SystemAdmins = append(append([]int64{}, branch.SystemAdmins...), staffID)
	b.m.branches[id] = branch
	return &branch, nil
}

type memoryRobots struct{ m *memoryDB }

func (r *memoryRobots) FindInBranch(ctx context.Context, id, branchID int64) (*models.Robot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	robot, ok := r.m.robots[id]
	if !ok || robot.BranchID != branchID {
		return nil, nil
	}
	return &robot, nil
}

func (r *memoryRobots) Create(ctx context.Context, robot *models.Robot) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.robots {
		if existing.RegistrationID == robot.RegistrationID {
			return errDuplicate
		}
	}
	robot.ID = r.m.id()
	r.m.robots[robot.ID] = *robot
	return nil
}

func (r *memoryRobots) ListByBranch(ctx context.Context, branchID int64) ([]models.Robot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Robot
	for _, robot := range r.m.robots {
		if robot.BranchID == branchID {
			out = append(out, robot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRobots) SetMaintenance(ctx context.Context, id, branchID int64, underMaintenance bool) (*models.Robot, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	robot, ok := r.m.robots[id]
	if !ok || robot.BranchID != branchID {
		return nil, nil
	}
	robot.IsUnderMaintenance = underMaintenance
	r.m.robots[id] = robot
	return &robot, nil
}

type memoryPatients struct{ m *memoryDB }

func (p *memoryPatients) Create(ctx context.Context, patient *models.Patient) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	if patient.OpID != "" {
		for _, existing := range p.m.patients {
			if existing.OpID == patient.OpID {
				return errDuplicate
			}
		}
	}
	patient.ID = p.m.id()
	p.m.patients[patient.ID] = *patient
	return nil
}

func (p *memoryPatients) FindOne(ctx context.Context, lookup models.PatientLookup) (*models.Patient, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	patient, ok := p.m.patients[lookup.ID]
	if !ok || patient.ClientID != lookup.ClientID {
		return nil, nil
	}
	if lookup.OpID != "" && patient.OpID != lookup.OpID {
		return nil, nil
	}
	return &patient, nil
}

func (p *memoryPatients) ExistsByOpID(ctx context.Context, opID string) (bool, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	for _, existing := range p.m.patients {
		if existing.OpID == opID {
			return true, nil
		}
	}
	return false, nil
}

func (p *memoryPatients) List(ctx context.Context, clientID int64) ([]models.Patient, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	var out []models.Patient
	for _, patient := range p.m.patients {
		if patient.ClientID == clientID && !patient.IsArchived {
			out = append(out, patient)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (p *memoryPatients) Update(ctx context.Context, id, clientID int64, update models.PatientUpdate) (*models.Patient, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	patient, ok := p.m.patients[id]
	if !ok || patient.ClientID != clientID || patient.IsArchived {
		return nil, nil
	}
	if update.Name != nil {
		patient.Name = *update.Name
	}
	if update.MobileNumber != nil {
		patient.MobileNumber = *update.MobileNumber
	}
	if update.Age != nil {
		patient.Age = *update.Age
	}
	if update.ActionRequired != nil {
		patient.ActionRequired = *update.ActionRequired
	}
	p.m.patients[id] = patient
	return &patient, nil
}

func (p *memoryPatients) Archive(ctx context.Context, id, clientID int64) (bool, error) {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	patient, ok := p.m.patients[id]
	if !ok || patient.ClientID != clientID || patient.IsArchived {
		return false, nil
	}
	patient.IsArchived = true
	p.m.patients[id] = patient
	return true, nil
}

func (p *memoryPatients) Delete(ctx context.Context, id int64) error {
	p.m.mu.Lock()
	defer p.m.mu.Unlock()
	if p.m.failPatientDelete != nil {
		return p.m.failPatientDelete
	}
	delete(p.m.patients, id)
	return nil
}

type memoryAppointments struct{ m *memoryDB }

func (a *memoryAppointments) billingTaken(billingID string, excludeID int64) bool {
	for _, existing := range a.m.appointments {
		if existing.ID != excludeID && existing.BillingID == billingID {
			return true
		}
	}
	return false
}

func (a *memoryAppointments) Create(ctx context.Context, appointment *models.Appointment) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	if a.m.failAppointmentCreate != nil {
		return a.m.failAppointmentCreate
	}
	if appointment.BillingID != "" && a.billingTaken(appointment.BillingID, 0) {
		return errDuplicate
	}
	appointment.ID = a.m.id()
	a.m.appointments[appointment.ID] = *appointment
	return nil
}

func (a *memoryAppointments) ExistsByBillingID(ctx context.Context, billingID string, excludeID int64) (bool, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	return a.billingTaken(billingID, excludeID), nil
}

func (a *memoryAppointments) FindInClient(ctx context.Context, id, clientID int64) (*models.Appointment, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	appointment, ok := a.m.appointments[id]
	if !ok || appointment.ClientID != clientID {
		return nil, nil
	}
	return &appointment, nil
}

func (a *memoryAppointments) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	out := []models.Appointment{}
	for _, appointment := range a.m.appointments {
		switch {
		case appointment.ClientID != filter.ClientID,
			filter.DoctorID != 0 && appointment.DoctorID != filter.DoctorID,
			filter.BranchID != 0 && appointment.BranchID != filter.BranchID,
			filter.Status != "" && appointment.Status != filter.Status,
			filter.Date != "" && appointment.Date != filter.Date:
			continue
		}
		out = append(out, appointment)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (a *memoryAppointments) Replace(ctx context.Context, id, clientID int64, edit models.AppointmentEdit) (*models.Appointment, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	appointment, ok := a.m.appointments[id]
	if !ok || appointment.ClientID != clientID {
		return nil, nil
	}
	if edit.BillingID != "" && a.billingTaken(edit.BillingID, id) {
		return nil, errDuplicate
	}
	appointment.BranchID = edit.BranchID
	appointment.RobotID = edit.RobotID
	appointment.DoctorID = edit.DoctorID
	appointment.Date = edit.Date
	appointment.Time = edit.Time
	appointment.ScanType = edit.ScanType
	appointment.DifferentialDiagnosis = edit.DifferentialDiagnosis
	appointment.BillingID = edit.BillingID
	appointment.Conference = edit.Conference
	a.m.appointments[id] = appointment
	return &appointment, nil
}

func (a *memoryAppointments) Reschedule(ctx context.Context, id, clientID int64, date, time string, conference *models.ConferenceLinks) (*models.Appointment, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	appointment, ok := a.m.appointments[id]
	if !ok || appointment.ClientID != clientID {
		return nil, nil
	}
	appointment.Date = date
	appointment.Time = time
	appointment.Conference = conference
	a.m.appointments[id] = appointment
	return &appointment, nil
}

func (a *memoryAppointments) DeleteInClient(ctx context.Context, id, clientID int64) (*models.Appointment, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	appointment, ok := a.m.appointments[id]
	if !ok || appointment.ClientID != clientID {
		return nil, nil
	}
	delete(a.m.appointments, id)
	return &appointment, nil
}

func (a *memoryAppointments) ListMissingConference(ctx context.Context) ([]models.Appointment, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	var out []models.Appointment
	for _, appointment := range a.m.appointments {
		if appointment.Status == models.StatusUpComing && appointment.Conference == nil {
			out = append(out, appointment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (a *memoryAppointments) SetConference(ctx context.Context, id int64, conference *models.ConferenceLinks) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	appointment, ok := a.m.appointments[id]
	if !ok {
		return errors.New("appointment missing")
	}
	appointment.Conference = conference
	a.m.appointments[id] = appointment
	return nil
}

func (a *memoryAppointments) MarkReportSent(ctx context.Context, id int64) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()
	appointment, ok := a.m.appointments[id]
	if !ok {
		return errors.New("appointment missing")
	}
	appointment.IsReportSent = true
	a.m.appointments[id] = appointment
	return nil
}

type memoryReports struct{ m *memoryDB }

func (r *memoryReports) Create(ctx context.Context, report *models.Report) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	report.ID = r.m.id()
	r.m.reports[report.ID] = *report
	return nil
}

func (r *memoryReports) ExistsForAppointment(ctx context.Context, appointmentID int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, report := range r.m.reports {
		if report.AppointmentID == appointmentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryReports) FindAndCountView(ctx context.Context, id, clientID int64) (*models.Report, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	report, ok := r.m.reports[id]
	if !ok || report.ClientID != clientID || report.IsArchived {
		return nil, nil
	}
	report.ViewCount++
	r.m.reports[id] = report
	return &report, nil
}

func (r *memoryReports) Archive(ctx context.Context, id, clientID int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	report, ok := r.m.reports[id]
	if !ok || report.ClientID != clientID || report.IsArchived {
		return false, nil
	}
	report.IsArchived = true
	r.m.reports[id] = report
	return true, nil
}

// stubGateway hands out numbered links, or nil when degraded is set.
type stubGateway struct {
	mu       sync.Mutex
	degraded bool
	requests []ConferenceRequest
}

func (g *stubGateway) Provision(ctx context.Context, req ConferenceRequest) *models.ConferenceLinks {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.degraded {
		return nil
	}
	n := len(g.requests)
	return &models.ConferenceLinks{
		MeetingURL:   "https://meet.test/room-" + string(rune('a'+n-1)),
		ModeratorURL: "https://meet.test/room-" + string(rune('a'+n-1)) + "?moderator",
	}
}

func (g *stubGateway) last() ConferenceRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests[len(g.requests)-1]
}

func (g *stubGateway) setDegraded(v bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.degraded = v
}
