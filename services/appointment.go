package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"RoboScan360/config/redis"
	"RoboScan360/metrics"
	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/util"
)

var appointmentTracer = otel.Tracer("roboscan/appointments")

type PatientFields struct {
	Name         string
	MobileNumber string
	Email        string
	Gender       string
	Age          int
	PinCode      string
	EID          string
	Address      string
}

type CreateAppointmentInput struct {
	// PatientID selects an existing patient. When nil a patient is created
	// from Patient.
	PatientID             *int64
	OpID                  string
	Patient               PatientFields
	DoctorID              int64
	BranchID              int64
	RobotID               int64
	Date                  string
	Time                  string
	ScanType              string
	DifferentialDiagnosis string
	BillingID             string
	ScanReferenceID       string
}

type EditAppointmentInput struct {
	BranchID              int64
	RobotID               int64
	DoctorID              int64
	Date                  string
	Time                  string
	ScanType              string
	DifferentialDiagnosis string
	BillingID             string
}

type RescheduleAppointmentInput struct {
	Date string
	Time string
	// DoctorName is used as the meeting owner as supplied.
	DoctorName string
}

type AppointmentOptions struct {
	Location *time.Location
	// EditRequiresUpcoming blocks edits once an appointment has left
	// up_coming. Off by default, which lets edits through in any status.
	EditRequiresUpcoming bool
	Now                  func() time.Time
}

type AppointmentService struct {
	stores    Stores
	directory *Directory
	gateway   ConferenceGateway
	cache     *redis.Cache
	metrics   *metrics.AppointmentMetrics

	loc                  *time.Location
	now                  func() time.Time
	editRequiresUpcoming bool
}

func NewAppointmentService(stores Stores, directory *Directory, gateway ConferenceGateway, cache *redis.Cache, m *metrics.AppointmentMetrics, opts AppointmentOptions) *AppointmentService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AppointmentService{
		stores:               stores,
		directory:            directory,
		gateway:              gateway,
		cache:                cache,
		metrics:              m,
		loc:                  opts.Location,
		now:                  opts.Now,
		editRequiresUpcoming: opts.EditRequiresUpcoming,
	}
}

func appointmentKey(id int64) string {
	return util.AppointmentKey + strconv.FormatInt(id, 10)
}

func (s *AppointmentService) observe(operation string, start time.Time, span trace.Span, err error) {
	outcome := "ok"
	if err != nil {
		outcome = util.KindOf(err).String()
		span.SetAttributes(attribute.String("appointment.error_kind", outcome))
	}
	s.metrics.ObserveOperation(operation, outcome, time.Since(start).Seconds())
	span.End()
}

/*
* Reject a date and time that is not strictly in the future
* Malformed values are reported as invalid input
 */
func (s *AppointmentService) ensureFuture(date, clock string) error {
	future, err := IsFutureDateTime(date, clock, s.now(), s.loc)
	if err != nil {
		return util.WrapError(util.KindInvalid, err.Error(), err)
	}
	if !future {
		return util.NewError(util.KindInvalidSchedule, util.INVALID_DATE_OR_TIME)
	}
	return nil
}

// provisionConference asks the gateway for links. A nil result is a
// degraded provisioning and never fails the caller.
func (s *AppointmentService) provisionConference(ctx context.Context, owner, date, clock string) (*models.ConferenceLinks, error) {
	clock24, err := ConvertTo24Hour(clock)
	if err != nil {
		return nil, util.WrapError(util.KindInvalid, err.Error(), err)
	}
	links := s.gateway.Provision(ctx, ConferenceRequest{Owner: owner, Date: date, Time: clock24})
	s.metrics.ObserveConference(links != nil)
	if links == nil {
		log.Warn().Str("owner", owner).Str("date", date).Str("kind", util.KindGatewayDegraded.String()).Msg("appointment saved without conference links")
	}
	return links, nil
}

type createLookups struct {
	doctor *models.Staff
	branch *models.Branch
	robot  *models.Robot
	client *models.Client
}

/*
* Fetch doctor, branch, robot and client catalog concurrently
* Wait for all of them
* Report the first missing one in the order doctor, branch, robot, client
 */
func (s *AppointmentService) resolveCreateLookups(ctx context.Context, clientID int64, in CreateAppointmentInput) (*createLookups, error) {
	var res createLookups
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.doctor, err = s.stores.Staff.FindInClient(gctx, in.DoctorID, clientID, role.Doctor)
		return err
	})
	g.Go(func() (err error) {
		res.branch, err = s.stores.Branches.FindInClient(gctx, in.BranchID, clientID)
		return err
	})
	g.Go(func() (err error) {
		res.robot, err = s.stores.Robots.FindInBranch(gctx, in.RobotID, in.BranchID)
		return err
	})
	g.Go(func() (err error) {
		res.client, err = s.stores.Clients.FindByID(gctx, clientID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Int64("clientId", clientID).Msg("error while resolving appointment references")
		return nil, err
	}

	switch {
	case res.doctor == nil:
		return nil, util.NewError(util.KindNotFound, util.DOCTOR_NOT_FOUND)
	case res.branch == nil:
		return nil, util.NewError(util.KindNotFound, util.BRANCH_NOT_FOUND)
	case res.robot == nil:
		return nil, util.NewError(util.KindNotFound, util.ROBOT_NOT_FOUND)
	case res.client == nil:
		return nil, util.NewError(util.KindNotFound, util.CLIENT_NOT_FOUND)
	}
	return &res, nil
}

func (s *AppointmentService) ensureBillingIDFree(ctx context.Context, billingID string, excludeID int64) error {
	if billingID == "" {
		return nil
	}
	exists, err := s.stores.Appointments.ExistsByBillingID(ctx, billingID, excludeID)
	if err != nil {
		log.Error().Err(err).Str("billingId", billingID).Msg("error while checking billing id")
		return err
	}
	if exists {
		return util.NewError(util.KindDuplicateBillingID, util.BILLING_ID_ALREADY_EXISTS)
	}
	return nil
}

/*
* Resolve the actor and its client
* Resolve doctor, branch, robot and client catalog concurrently
* Check billing id, then scan type, then the schedule
* Create the patient inline when no patient id is given
* Provision conference links with the doctor as owner
* Save the appointment, removing an inline patient if that fails
 */
func (s *AppointmentService) CreateAppointment(ctx context.Context, actor models.Actor, in CreateAppointmentInput) (out *util.Outcome, err error) {
	ctx, span := appointmentTracer.Start(ctx, "appointment.create")
	defer func(start time.Time) { s.observe("create", start, span, err) }(time.Now())
	span.SetAttributes(
		attribute.Int64("appointment.doctor_id", in.DoctorID),
		attribute.Int64("appointment.branch_id", in.BranchID),
		attribute.Int64("appointment.robot_id", in.RobotID),
	)

	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.CreateAppointment)
	if err != nil {
		return nil, err
	}
	clientID := staff.ClientID

	refs, err := s.resolveCreateLookups(ctx, clientID, in)
	if err != nil {
		return nil, err
	}
	if err := s.ensureBillingIDFree(ctx, in.BillingID, 0); err != nil {
		return nil, err
	}
	if !refs.client.HasScanType(in.ScanType) {
		return nil, util.NewError(util.KindUnknownScanType, util.INVALID_SCAN_TYPE)
	}
	if err := s.ensureFuture(in.Date, in.Time); err != nil {
		return nil, err
	}

	var rb rollback
	patientID, err := resolvePatientForAppointment(ctx, s.stores.Patients, staff, in, s.now(), &rb)
	if err != nil {
		return nil, err
	}

	doctorName, err := s.stores.Staff.DoctorName(ctx, in.DoctorID)
	if err != nil {
		log.Error().Err(err).Int64("doctorId", in.DoctorID).Msg("error while fetching doctor name")
		rb.run(ctx)
		return nil, err
	}
	conference, err := s.provisionConference(ctx, doctorName, in.Date, in.Time)
	if err != nil {
		rb.run(ctx)
		return nil, err
	}

	now := s.now()
	appointment := &models.Appointment{
		ClientID:              clientID,
		OpID:                  in.OpID,
		BillingID:             in.BillingID,
		ScanReferenceID:       in.ScanReferenceID,
		PatientID:             patientID,
		DoctorID:              in.DoctorID,
		BranchID:              in.BranchID,
		RobotID:               in.RobotID,
		Date:                  in.Date,
		Time:                  in.Time,
		ScanType:              in.ScanType,
		DifferentialDiagnosis: in.DifferentialDiagnosis,
		Status:                models.StatusUpComing,
		Type:                  models.TypeNormalAppointment,
		CreatedBy:             actor.ID,
		IsReportSent:          false,
		Conference:            conference,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := s.stores.Appointments.Create(ctx, appointment); err != nil {
		log.Error().Err(err).Int64("patientId", patientID).Msg("error while creating appointment")
		rb.run(ctx)
		if util.IsKind(err, util.KindConstraintViolation) && in.BillingID != "" {
			return nil, util.WrapError(util.KindDuplicateBillingID, util.BILLING_ID_ALREADY_EXISTS, err)
		}
		return nil, err
	}
	span.SetAttributes(attribute.Int64("appointment.id", appointment.ID))

	if err := s.cache.SetCache(ctx, appointmentKey(appointment.ID), appointment); err != nil {
		log.Warn().Err(err).Int64("appointmentId", appointment.ID).Msg("failed caching new appointment")
	}
	return &util.Outcome{
		Message: fmt.Sprintf("Appointment booked successfully for %s", appointment.Date),
		Data:    appointment,
	}, nil
}

type editLookups struct {
	branch      *models.Branch
	doctor      *models.Staff
	doctorName  string
	client      *models.Client
	robot       *models.Robot
	appointment *models.Appointment
}

/*
* Fetch branch, doctor with name, client catalog, robot and the appointment concurrently
* Report the first missing one in that order
 */
func (s *AppointmentService) resolveEditLookups(ctx context.Context, clientID, appointmentID int64, in EditAppointmentInput) (*editLookups, error) {
	var res editLookups
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.branch, err = s.stores.Branches.FindInClient(gctx, in.BranchID, clientID)
		return err
	})
	g.Go(func() error {
		doctor, err := s.stores.Staff.FindInClient(gctx, in.DoctorID, clientID, role.Doctor)
		if err != nil || doctor == nil {
			return err
		}
		name, err := s.stores.Staff.DoctorName(gctx, doctor.ID)
		if err != nil {
			return err
		}
		res.doctor, res.doctorName = doctor, name
		return nil
	})
	g.Go(func() (err error) {
		res.client, err = s.stores.Clients.FindByID(gctx, clientID)
		return err
	})
	g.Go(func() (err error) {
		res.robot, err = s.stores.Robots.FindInBranch(gctx, in.RobotID, in.BranchID)
		return err
	})
	g.Go(func() (err error) {
		res.appointment, err = s.stores.Appointments.FindInClient(gctx, appointmentID, clientID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Int64("appointmentId", appointmentID).Msg("error while resolving edit references")
		return nil, err
	}

	switch {
	case res.branch == nil:
		return nil, util.NewError(util.KindNotFound, util.BRANCH_NOT_FOUND)
	case res.doctor == nil:
		return nil, util.NewError(util.KindNotFound, util.DOCTOR_NOT_FOUND)
	case res.client == nil:
		return nil, util.NewError(util.KindNotFound, util.CLIENT_NOT_FOUND)
	case res.robot == nil:
		return nil, util.NewError(util.KindNotFound, util.ROBOT_NOT_FOUND)
	case res.appointment == nil:
		return nil, util.NewError(util.KindNotFound, util.APPOINTMENT_NOT_FOUND)
	}
	return &res, nil
}

/*
* Authorize like creation
* Resolve every reference and the appointment itself
* Check scan type, status guard, schedule and billing id
* Provision fresh conference links and replace all editable fields
 */
func (s *AppointmentService) EditAppointment(ctx context.Context, actor models.Actor, appointmentID int64, in EditAppointmentInput) (out *util.Outcome, err error) {
	ctx, span := appointmentTracer.Start(ctx, "appointment.edit")
	defer func(start time.Time) { s.observe("edit", start, span, err) }(time.Now())
	span.SetAttributes(attribute.Int64("appointment.id", appointmentID))

	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.UpdateAppointment)
	if err != nil {
		return nil, err
	}
	res, err := s.resolveEditLookups(ctx, staff.ClientID, appointmentID, in)
	if err != nil {
		return nil, err
	}
	if !res.client.HasScanType(in.ScanType) {
		return nil, util.NewError(util.KindUnknownScanType, util.INVALID_SCAN_TYPE)
	}
	if s.editRequiresUpcoming && res.appointment.Status != models.StatusUpComing {
		return nil, util.NewError(util.KindInvalidSchedule, util.APPOINTMENT_NOT_EDITABLE)
	}
	if err := s.ensureFuture(in.Date, in.Time); err != nil {
		return nil, err
	}
	if err := s.ensureBillingIDFree(ctx, in.BillingID, appointmentID); err != nil {
		return nil, err
	}

	conference, err := s.provisionConference(ctx, res.doctorName, in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	updated, err := s.stores.Appointments.Replace(ctx, appointmentID, staff.ClientID, models.AppointmentEdit{
		BranchID:              in.BranchID,
		RobotID:               in.RobotID,
		DoctorID:              in.DoctorID,
		Date:                  in.Date,
		Time:                  in.Time,
		ScanType:              in.ScanType,
		DifferentialDiagnosis: in.DifferentialDiagnosis,
		BillingID:             in.BillingID,
		Conference:            conference,
	})
	if err != nil {
		log.Error().Err(err).Int64("appointmentId", appointmentID).Msg("error while updating appointment")
		if util.IsKind(err, util.KindConstraintViolation) && in.BillingID != "" {
			return nil, util.WrapError(util.KindDuplicateBillingID, util.BILLING_ID_ALREADY_EXISTS, err)
		}
		return nil, err
	}
	if updated == nil {
		return nil, util.NewError(util.KindNotFound, util.APPOINTMENT_NOT_FOUND)
	}
	if err := s.cache.DeleteCache(ctx, appointmentKey(appointmentID)); err != nil {
		log.Warn().Err(err).Int64("appointmentId", appointmentID).Msg("failed deleting appointment cache")
	}
	return &util.Outcome{Message: "Appointment updated successfully", Data: updated}, nil
}

/*
* Find the appointment in the actor's client
* Check the new schedule
* Provision links for the supplied doctor name
* Update only date, time and conference
 */
func (s *AppointmentService) RescheduleAppointment(ctx context.Context, actor models.Actor, appointmentID int64, in RescheduleAppointmentInput) (out *util.Outcome, err error) {
	ctx, span := appointmentTracer.Start(ctx, "appointment.reschedule")
	defer func(start time.Time) { s.observe("reschedule", start, span, err) }(time.Now())
	span.SetAttributes(attribute.Int64("appointment.id", appointmentID))

	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.UpdateAppointment)
	if err != nil {
		return nil, err
	}
	appointment, err := s.stores.Appointments.FindInClient(ctx, appointmentID, staff.ClientID)
	if err != nil {
		log.Error().Err(err).Int64("appointmentId", appointmentID).Msg("error while fetching appointment")
		return nil, err
	}
	if appointment == nil {
		return nil, util.NewError(util.KindNotFound, util.APPOINTMENT_NOT_FOUND)
	}
	if err := s.ensureFuture(in.Date, in.Time); err != nil {
		return nil, err
	}
	conference, err := s.provisionConference(ctx, in.DoctorName, in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	updated, err := s.stores.Appointments.Reschedule(ctx, appointmentID, staff.ClientID, in.Date, in.Time, conference)
	if err != nil {
		log.Error().Err(err).Int64("appointmentId", appointmentID).Msg("error while rescheduling appointment")
		return nil, err
	}
	if updated == nil {
		return nil, util.NewError(util.KindNotFound, util.APPOINTMENT_NOT_FOUND)
	}
	if err := s.cache.DeleteCache(ctx, appointmentKey(appointmentID)); err != nil {
		log.Warn().Err(err).Int64("appointmentId", appointmentID).Msg("failed deleting appointment cache")
	}
	return &util.Outcome{
		Message: fmt.Sprintf("Appointment rescheduled to %s %s", updated.Date, updated.Time),
		Data:    updated,
	}, nil
}

/*
* Authorize the actor
* Delete the appointment scoped by id and client in one step
* Nothing deleted means not found
 */
func (s *AppointmentService) CancelAppointment(ctx context.Context, actor models.Actor, appointmentID int64) (out *util.Outcome, err error) {
	ctx, span := appointmentTracer.Start(ctx, "appointment.cancel")
	defer func(start time.Time) { s.observe("cancel", start, span, err) }(time.Now())
	span.SetAttributes(attribute.Int64("appointment.id", appointmentID))

	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.CancelAppointment)
	if err != nil {
		return nil, err
	}
	deleted, err := s.stores.Appointments.DeleteInClient(ctx, appointmentID, staff.ClientID)
	if err != nil {
		log.Error().Err(err).Int64("appointmentId", appointmentID).Msg("error while deleting appointment")
		return nil, err
	}
	if deleted == nil {
		return nil, util.NewError(util.KindNotFound, util.APPOINTMENT_NOT_FOUND)
	}
	if err := s.cache.DeleteCache(ctx, appointmentKey(appointmentID)); err != nil {
		log.Warn().Err(err).Int64("appointmentId", appointmentID).Msg("failed deleting appointment cache")
	}
	return &util.Outcome{Message: "Appointment cancelled successfully", Data: deleted}, nil
}

/*
* Check in cache, if exists and in the actor's client return it
* If not exists fetch from database and set in cache
* Doctors only see their own appointments
 */
func (s *AppointmentService) FetchAppointment(ctx context.Context, actor models.Actor, appointmentID int64) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ViewAppointment)
	if err != nil {
		return nil, err
	}
	key := appointmentKey(appointmentID)

	var appointment *models.Appointment
	cached := &models.Appointment{}
	exists, err := s.cache.GetCache(ctx, key, cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("error while reading appointment cache")
	}
	if exists && cached.ClientID == staff.ClientID {
		appointment = cached
	} else {
		appointment, err = s.stores.Appointments.FindInClient(ctx, appointmentID, staff.ClientID)
		if err != nil {
			log.Error().Err(err).Int64("appointmentId", appointmentID).Msg("error while fetching appointment")
			return nil, err
		}
		if appointment != nil {
			if err := s.cache.SetCache(ctx, key, appointment); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed caching appointment")
			}
		}
	}
	if appointment == nil || (actor.Role == role.Doctor && appointment.DoctorID != actor.ID) {
		return nil, util.NewError(util.KindNotFound, util.APPOINTMENT_NOT_FOUND)
	}
	return &util.Outcome{Message: "Appointment fetched successfully", Data: appointment}, nil
}

func (s *AppointmentService) ListAppointments(ctx context.Context, actor models.Actor, filter models.AppointmentFilter) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ViewAppointment)
	if err != nil {
		return nil, err
	}
	filter.ClientID = staff.ClientID
	if actor.Role == role.Doctor {
		filter.DoctorID = actor.ID
	}
	appointments, err := s.stores.Appointments.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("clientId", staff.ClientID).Msg("error while listing appointments")
		return nil, err
	}
	return &util.Outcome{Message: "Appointments fetched successfully", Data: appointments}, nil
}

/*
* Find up_coming appointments saved without links
* Skip the ones already in the past
* Provision again and store the links that come back
 */
func (s *AppointmentService) ReprovisionMissingConferences(ctx context.Context) (int, error) {
	appointments, err := s.stores.Appointments.ListMissingConference(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error while listing appointments without conference")
		return 0, err
	}
	fixed := 0
	for _, a := range appointments {
		future, err := IsFutureDateTime(a.Date, a.Time, s.now(), s.loc)
		if err != nil || !future {
			continue
		}
		name, err := s.stores.Staff.DoctorName(ctx, a.DoctorID)
		if err != nil {
			log.Error().Err(err).Int64("appointmentId", a.ID).Msg("error while fetching doctor name")
			continue
		}
		links, err := s.provisionConference(ctx, name, a.Date, a.Time)
		if err != nil || links == nil {
			continue
		}
		if err := s.stores.Appointments.SetConference(ctx, a.ID, links); err != nil {
			log.Error().Err(err).Int64("appointmentId", a.ID).Msg("error while saving conference links")
			continue
		}
		if err := s.cache.DeleteCache(ctx, appointmentKey(a.ID)); err != nil {
			log.Warn().Err(err).Int64("appointmentId", a.ID).Msg("failed deleting appointment cache")
		}
		fixed++
	}
	return fixed, nil
}
