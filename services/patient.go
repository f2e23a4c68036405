package services

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"RoboScan360/config/redis"
	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/util"
)

type CreatePatientInput struct {
	OpID string
	PatientFields
}

type PatientService struct {
	patients  PatientStore
	directory *Directory
	cache     *redis.Cache
	now       func() time.Time
}

func NewPatientService(patients PatientStore, directory *Directory, cache *redis.Cache) *PatientService {
	return &PatientService{patients: patients, directory: directory, cache: cache, now: time.Now}
}

func patientKey(id int64) string {
	return util.PatientKey + strconv.FormatInt(id, 10)
}

func ensureOpIDFree(ctx context.Context, patients PatientStore, opID string) error {
	if opID == "" {
		return nil
	}
	exists, err := patients.ExistsByOpID(ctx, opID)
	if err != nil {
		log.Error().Err(err).Str("opId", opID).Msg("error while checking op id")
		return err
	}
	if exists {
		return util.NewError(util.KindDuplicateOpID, util.OP_ID_ALREADY_EXISTS)
	}
	return nil
}

func newPatient(staff *models.Staff, opID string, fields PatientFields, now time.Time) *models.Patient {
	return &models.Patient{
		ClientID:       staff.ClientID,
		OpID:           opID,
		MobileNumber:   fields.MobileNumber,
		Name:           fields.Name,
		Email:          fields.Email,
		Gender:         fields.Gender,
		Age:            fields.Age,
		PinCode:        fields.PinCode,
		EID:            fields.EID,
		Address:        fields.Address,
		ActionRequired: false,
		CreatedBy:      staff.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

/*
* No patient id: check op id, create the patient and register its removal
* Patient id given: look it up by id within the client, and by op id when given
 */
func resolvePatientForAppointment(ctx context.Context, patients PatientStore, staff *models.Staff, in CreateAppointmentInput, now time.Time, rb *rollback) (int64, error) {
	if in.PatientID == nil {
		if err := ensureOpIDFree(ctx, patients, in.OpID); err != nil {
			return 0, err
		}
		patient := newPatient(staff, in.OpID, in.Patient, now)
		if err := patients.Create(ctx, patient); err != nil {
			log.Error().Err(err).Int64("clientId", staff.ClientID).Msg("error while creating patient for appointment")
			if util.IsKind(err, util.KindConstraintViolation) && in.OpID != "" {
				return 0, util.WrapError(util.KindDuplicateOpID, util.OP_ID_ALREADY_EXISTS, err)
			}
			return 0, err
		}
		id := patient.ID
		rb.add("delete patient", func(ctx context.Context) error {
			return patients.Delete(ctx, id)
		})
		return id, nil
	}

	patient, err := patients.FindOne(ctx, models.PatientLookup{ID: *in.PatientID, ClientID: staff.ClientID, OpID: in.OpID})
	if err != nil {
		log.Error().Err(err).Int64("patientId", *in.PatientID).Msg("error while fetching patient")
		return 0, err
	}
	if patient == nil {
		return 0, util.NewError(util.KindNotFound, util.PATIENT_NOT_FOUND)
	}
	return patient.ID, nil
}

func (s *PatientService) CreatePatient(ctx context.Context, actor models.Actor, in CreatePatientInput) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ManagePatient)
	if err != nil {
		return nil, err
	}
	if err := ensureOpIDFree(ctx, s.patients, in.OpID); err != nil {
		return nil, err
	}
	patient := newPatient(staff, in.OpID, in.PatientFields, s.now())
	if err := s.patients.Create(ctx, patient); err != nil {
		log.Error().Err(err).Int64("clientId", staff.ClientID).Msg("error while creating patient")
		if util.IsKind(err, util.KindConstraintViolation) && in.OpID != "" {
			return nil, util.WrapError(util.KindDuplicateOpID, util.OP_ID_ALREADY_EXISTS, err)
		}
		return nil, err
	}
	if err := s.cache.SetCache(ctx, patientKey(patient.ID), patient); err != nil {
		log.Warn().Err(err).Int64("patientId", patient.ID).Msg("failed caching new patient")
	}
	return &util.Outcome{Message: "Patient created successfully", Data: patient}, nil
}

/*
* Check in cache, if exists and belongs to the client return it
* If not exists fetch from database and set in cache
 */
func (s *PatientService) FetchPatient(ctx context.Context, actor models.Actor, id int64) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ViewPatient)
	if err != nil {
		return nil, err
	}
	key := patientKey(id)
	cached := &models.Patient{}
	exists, err := s.cache.GetCache(ctx, key, cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("error while reading patient cache")
	}
	if exists && cached.ClientID == staff.ClientID && !cached.IsArchived {
		return &util.Outcome{Message: "Patient fetched successfully", Data: cached}, nil
	}

	patient, err := s.patients.FindOne(ctx, models.PatientLookup{ID: id, ClientID: staff.ClientID})
	if err != nil {
		log.Error().Err(err).Int64("patientId", id).Msg("error while fetching patient")
		return nil, err
	}
	if patient == nil || patient.IsArchived {
		return nil, util.NewError(util.KindNotFound, util.PATIENT_NOT_FOUND)
	}
	if err := s.cache.SetCache(ctx, key, patient); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed caching patient")
	}
	return &util.Outcome{Message: "Patient fetched successfully", Data: patient}, nil
}

func (s *PatientService) ListPatients(ctx context.Context, actor models.Actor) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ViewPatient)
	if err != nil {
		return nil, err
	}
	patients, err := s.patients.List(ctx, staff.ClientID)
	if err != nil {
		log.Error().Err(err).Int64("clientId", staff.ClientID).Msg("error while listing patients")
		return nil, err
	}
	return &util.Outcome{Message: "Patients fetched successfully", Data: patients}, nil
}

func (s *PatientService) UpdatePatient(ctx context.Context, actor models.Actor, id int64, update models.PatientUpdate) (*util.Outcome, error) {
	if update.Empty() {
		return nil, util.NewError(util.KindInvalid, util.NO_FIELDS_PROVIDED_TO_UPDATE)
	}
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ManagePatient)
	if err != nil {
		return nil, err
	}
	patient, err := s.patients.Update(ctx, id, staff.ClientID, update)
	if err != nil {
		log.Error().Err(err).Int64("patientId", id).Msg("error while updating patient")
		return nil, err
	}
	if patient == nil {
		return nil, util.NewError(util.KindNotFound, util.PATIENT_NOT_FOUND)
	}
	if err := s.cache.SetCache(ctx, patientKey(id), patient); err != nil {
		log.Warn().Err(err).Int64("patientId", id).Msg("failed caching patient")
	}
	return &util.Outcome{Message: "Patient updated successfully", Data: patient}, nil
}

// ArchivePatient soft-deletes; appointments keep their patient reference.
func (s *PatientService) ArchivePatient(ctx context.Context, actor models.Actor, id int64) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ManagePatient)
	if err != nil {
		return nil, err
	}
	archived, err := s.patients.Archive(ctx, id, staff.ClientID)
	if err != nil {
		log.Error().Err(err).Int64("patientId", id).Msg("error while archiving patient")
		return nil, err
	}
	if !archived {
		return nil, util.NewError(util.KindNotFound, util.PATIENT_NOT_FOUND)
	}
	if err := s.cache.DeleteCache(ctx, patientKey(id)); err != nil {
		log.Warn().Err(err).Int64("patientId", id).Msg("failed deleting patient cache")
	}
	return &util.Outcome{Message: "Patient archived successfully"}, nil
}
