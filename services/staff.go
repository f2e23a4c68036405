package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/util"
)

// TokenIssuer signs session tokens for a logged in staff member.
type TokenIssuer interface {
	GenerateJWT(staffID int64, r role.Role) (string, error)
}

type DoctorProfileInput struct {
	RegistrationID        string
	DepartmentID          int64
	CompletedTrainingYear int
	WorkingHours          *models.WorkingHours
}

type CreateStaffInput struct {
	Name     string
	Email    string
	PhoneNo  string
	Password string
	Role     role.Role
	BranchID *int64
	// Doctor is required when Role is doctor and ignored otherwise.
	Doctor *DoctorProfileInput
}

type LoginResult struct {
	Token string        `json:"token"`
	Staff *models.Staff `json:"staff"`
}

type StaffService struct {
	stores    Stores
	directory *Directory
	roles     role.Config
	tokens    TokenIssuer
	now       func() time.Time
}

func NewStaffService(stores Stores, directory *Directory, roles role.Config, tokens TokenIssuer) *StaffService {
	return &StaffService{stores: stores, directory: directory, roles: roles, tokens: tokens, now: time.Now}
}

/*
* Generate a bcrypt based on the password given
 */
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

/*
* Check the creator may create the target role
* Check email is not taken
* System admins need a branch of the same client
* Doctors need an active department, their profile is saved first
* Save the staff, removing the profile if that fails
 */
func (s *StaffService) CreateStaff(ctx context.Context, actor models.Actor, in CreateStaffInput) (*util.Outcome, error) {
	creator, err := s.directory.ResolveAuthorized(ctx, actor, role.ManageStaff)
	if err != nil {
		return nil, err
	}
	if !s.roles.Valid(in.Role) {
		return nil, util.NewError(util.KindInvalid, util.INVALID_ROLE)
	}
	if !s.roles.CanCreate(actor.Role, in.Role) {
		return nil, util.NewError(util.KindForbidden, util.USER_DOESNOT_HAVE_ACCESS)
	}

	existing, err := s.stores.Staff.FindByEmail(ctx, in.Email)
	if err != nil {
		log.Error().Err(err).Str("email", in.Email).Msg("error while checking staff email")
		return nil, err
	}
	if existing != nil {
		return nil, util.NewError(util.KindInvalid, util.EMAIL_ALREADY_EXISTS)
	}

	if in.BranchID != nil {
		branch, err := s.stores.Branches.FindInClient(ctx, *in.BranchID, creator.ClientID)
		if err != nil {
			log.Error().Err(err).Int64("branchId", *in.BranchID).Msg("error while fetching branch")
			return nil, err
		}
		if branch == nil {
			return nil, util.NewError(util.KindNotFound, util.BRANCH_NOT_FOUND)
		}
	} else if in.Role == role.SystemAdmin {
		return nil, util.NewError(util.KindInvalid, util.BRANCH_REQUIRED)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		log.Error().Err(err).Msg("error while hashing password")
		return nil, err
	}

	now := s.now()
	createdBy := actor.ID
	staff := &models.Staff{
		ClientID:  creator.ClientID,
		BranchID:  in.BranchID,
		Name:      in.Name,
		Email:     in.Email,
		PhoneNo:   in.PhoneNo,
		Password:  hash,
		Role:      in.Role,
		CreatedBy: &createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var rb rollback
	if in.Role == role.Doctor {
		profileID, err := s.createDoctorProfile(ctx, creator.ClientID, in.Doctor, now, &rb)
		if err != nil {
			return nil, err
		}
		staff.DoctorProfileID = &profileID
	}

	if err := s.stores.Staff.Create(ctx, staff); err != nil {
		log.Error().Err(err).Str("email", in.Email).Msg("error while creating staff")
		rb.run(ctx)
		return nil, err
	}
	return &util.Outcome{Message: "Staff created successfully", Data: staff}, nil
}

func (s *StaffService) createDoctorProfile(ctx context.Context, clientID int64, in *DoctorProfileInput, now time.Time, rb *rollback) (int64, error) {
	if in == nil {
		return 0, util.NewError(util.KindInvalid, util.DOCTOR_PROFILE_REQUIRED)
	}
	client, err := s.stores.Clients.FindByID(ctx, clientID)
	if err != nil {
		log.Error().Err(err).Int64("clientId", clientID).Msg("error while fetching client")
		return 0, err
	}
	if client == nil {
		return 0, util.NewError(util.KindNotFound, util.CLIENT_NOT_FOUND)
	}
	if !client.ActiveDepartment(in.DepartmentID) {
		return 0, util.NewError(util.KindNotFound, util.DEPARTMENT_NOT_FOUND)
	}

	profile := &models.DoctorProfile{
		RegistrationID:        in.RegistrationID,
		DepartmentID:          in.DepartmentID,
		CompletedTrainingYear: in.CompletedTrainingYear,
		WorkingHours:          in.WorkingHours,
		IsApproved:            true,
		CreatedAt:             now,
	}
	if err := s.stores.Profiles.Create(ctx, profile); err != nil {
		log.Error().Err(err).Str("registrationId", in.RegistrationID).Msg("error while creating doctor profile")
		return 0, err
	}
	id := profile.ID
	rb.add("delete doctor profile", func(ctx context.Context) error {
		return s.stores.Profiles.Delete(ctx, id)
	})
	return id, nil
}

func (s *StaffService) FetchStaff(ctx context.Context, actor models.Actor, id int64) (*util.Outcome, error) {
	viewer, err := s.directory.ResolveAuthorized(ctx, actor, role.ViewStaff)
	if err != nil {
		return nil, err
	}
	staff, err := s.stores.Staff.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("staffId", id).Msg("error while fetching staff")
		return nil, err
	}
	if staff == nil || staff.ClientID != viewer.ClientID || staff.IsArchived {
		return nil, util.NewError(util.KindNotFound, util.STAFF_NOT_FOUND)
	}
	return &util.Outcome{Message: "Staff fetched successfully", Data: staff}, nil
}

// ListStaff returns the client's staff of one role, or all roles when r is empty.
func (s *StaffService) ListStaff(ctx context.Context, actor models.Actor, r role.Role) (*util.Outcome, error) {
	viewer, err := s.directory.ResolveAuthorized(ctx, actor, role.ViewStaff)
	if err != nil {
		return nil, err
	}
	if r != "" && !s.roles.Valid(r) {
		return nil, util.NewError(util.KindInvalid, util.INVALID_ROLE)
	}
	staff, err := s.stores.Staff.List(ctx, viewer.ClientID, r)
	if err != nil {
		log.Error().Err(err).Int64("clientId", viewer.ClientID).Msg("error while listing staff")
		return nil, err
	}
	return &util.Outcome{Message: "Staff fetched successfully", Data: staff}, nil
}

func (s *StaffService) ArchiveStaff(ctx context.Context, actor models.Actor, id int64) (*util.Outcome, error) {
	manager, err := s.directory.ResolveAuthorized(ctx, actor, role.ManageStaff)
	if err != nil {
		return nil, err
	}
	archived, err := s.stores.Staff.Archive(ctx, id, manager.ClientID)
	if err != nil {
		log.Error().Err(err).Int64("staffId", id).Msg("error while archiving staff")
		return nil, err
	}
	if !archived {
		return nil, util.NewError(util.KindNotFound, util.STAFF_NOT_FOUND)
	}
	return &util.Outcome{Message: "Staff archived successfully"}, nil
}

/*
* Find the staff by email
* Compare the password with the stored hash
* Issue a token carrying id and role
 */
func (s *StaffService) Login(ctx context.Context, email, password string) (*util.Outcome, error) {
	staff, err := s.stores.Staff.FindByEmail(ctx, email)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("error while fetching staff for login")
		return nil, err
	}
	if staff == nil || staff.IsArchived {
		return nil, util.NewError(util.KindActorNotFound, util.INVALID_CREDENTIALS)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		log.Warn().Int64("staffId", staff.ID).Msg("password mismatch")
		return nil, util.NewError(util.KindActorNotFound, util.INVALID_CREDENTIALS)
	}
	token, err := s.tokens.GenerateJWT(staff.ID, staff.Role)
	if err != nil {
		log.Error().Err(err).Int64("staffId", staff.ID).Msg("error while generating token")
		return nil, err
	}
	return &util.Outcome{Message: "Login successful", Data: LoginResult{Token: token, Staff: staff}}, nil
}
