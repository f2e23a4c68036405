package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"RoboScan360/config/redis"
	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/util"
)

type ReportService struct {
	stores    Stores
	directory *Directory
	cache     *redis.Cache
	now       func() time.Time
}

func NewReportService(stores Stores, directory *Directory, cache *redis.Cache) *ReportService {
	return &ReportService{stores: stores, directory: directory, cache: cache, now: time.Now}
}

/*
* Appointment must exist in the actor's client
* Only one report per appointment
* Save the report and mark the appointment as sent
 */
func (s *ReportService) CreateReport(ctx context.Context, actor models.Actor, appointmentID int64, body string) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ManageReport)
	if err != nil {
		return nil, err
	}
	appointment, err := s.stores.Appointments.FindInClient(ctx, appointmentID, staff.ClientID)
	if err != nil {
		log.Error().Err(err).Int64("appointmentId", appointmentID).Msg("error while fetching appointment")
		return nil, err
	}
	if appointment == nil || (actor.Role == role.Doctor && appointment.DoctorID != actor.ID) {
		return nil, util.NewError(util.KindNotFound, util.APPOINTMENT_NOT_FOUND)
	}
	exists, err := s.stores.Reports.ExistsForAppointment(ctx, appointmentID)
	if err != nil {
		log.Error().Err(err).Int64("appointmentId", appointmentID).Msg("error while checking report")
		return nil, err
	}
	if exists {
		return nil, util.NewError(util.KindInvalid, util.REPORT_ALREADY_EXISTS)
	}

	now := s.now()
	report := &models.Report{
		ClientID:      staff.ClientID,
		AppointmentID: appointmentID,
		Body:          body,
		Status:        models.ReportStatusGenerated,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.stores.Reports.Create(ctx, report); err != nil {
		log.Error().Err(err).Int64("appointmentId", appointmentID).Msg("error while creating report")
		return nil, err
	}
	if err := s.stores.Appointments.MarkReportSent(ctx, appointmentID); err != nil {
		log.Error().Err(err).Int64("appointmentId", appointmentID).Msg("error while marking report sent")
		return nil, err
	}
	if err := s.cache.DeleteCache(ctx, appointmentKey(appointmentID)); err != nil {
		log.Warn().Err(err).Int64("appointmentId", appointmentID).Msg("failed deleting appointment cache")
	}
	return &util.Outcome{Message: "Report created successfully", Data: report}, nil
}

// FetchReport counts every successful read.
func (s *ReportService) FetchReport(ctx context.Context, actor models.Actor, id int64) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ViewReport)
	if err != nil {
		return nil, err
	}
	report, err := s.stores.Reports.FindAndCountView(ctx, id, staff.ClientID)
	if err != nil {
		log.Error().Err(err).Int64("reportId", id).Msg("error while fetching report")
		return nil, err
	}
	if report == nil {
		return nil, util.NewError(util.KindNotFound, util.REPORT_NOT_FOUND)
	}
	return &util.Outcome{Message: "Report fetched successfully", Data: report}, nil
}

func (s *ReportService) ArchiveReport(ctx context.Context, actor models.Actor, id int64) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ManageReport)
	if err != nil {
		return nil, err
	}
	archived, err := s.stores.Reports.Archive(ctx, id, staff.ClientID)
	if err != nil {
		log.Error().Err(err).Int64("reportId", id).Msg("error while archiving report")
		return nil, err
	}
	if !archived {
		return nil, util.NewError(util.KindNotFound, util.REPORT_NOT_FOUND)
	}
	return &util.Outcome{Message: "Report archived successfully"}, nil
}
