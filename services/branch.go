package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/util"
)

type CreateBranchInput struct {
	Name          string
	ContactNumber string
	Location      string
	PinCode       string
}

type BranchService struct {
	stores    Stores
	directory *Directory
	now       func() time.Time
}

func NewBranchService(stores Stores, directory *Directory) *BranchService {
	return &BranchService{stores: stores, directory: directory, now: time.Now}
}

func (s *BranchService) CreateBranch(ctx context.Context, actor models.Actor, in CreateBranchInput) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ManageBranch)
	if err != nil {
		return nil, err
	}
	now := s.now()
	branch := &models.Branch{
		ClientID:      staff.ClientID,
		Name:          in.Name,
		ContactNumber: in.ContactNumber,
		Location:      in.Location,
		PinCode:       in.PinCode,
		SystemAdmins:  []int64{},
		CreatedBy:     actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.stores.Branches.Create(ctx, branch); err != nil {
		log.Error().Err(err).Int64("clientId", staff.ClientID).Msg("error while creating branch")
		return nil, err
	}
	return &util.Outcome{Message: "Branch created successfully", Data: branch}, nil
}

func (s *BranchService) FetchBranch(ctx context.Context, actor models.Actor, id int64) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ViewBranch)
	if err != nil {
		return nil, err
	}
	branch, err := s.stores.Branches.FindInClient(ctx, id, staff.ClientID)
	if err != nil {
		log.Error().Err(err).Int64("branchId", id).Msg("error while fetching branch")
		return nil, err
	}
	if branch == nil {
		return nil, util.NewError(util.KindNotFound, util.BRANCH_NOT_FOUND)
	}
	return &util.Outcome{Message: "Branch fetched successfully", Data: branch}, nil
}

func (s *BranchService) ListBranches(ctx context.Context, actor models.Actor) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ViewBranch)
	if err != nil {
		return nil, err
	}
	branches, err := s.stores.Branches.List(ctx, staff.ClientID)
	if err != nil {
		log.Error().Err(err).Int64("clientId", staff.ClientID).Msg("error while listing branches")
		return nil, err
	}
	return &util.Outcome{Message: "Branches fetched successfully", Data: branches}, nil
}

/*
* The staff must be a system admin of the same client
* Add to the branch's system admin list once
 */
func (s *BranchService) AssignSystemAdmin(ctx context.Context, actor models.Actor, branchID, staffID int64) (*util.Outcome, error) {
	manager, err := s.directory.ResolveAuthorized(ctx, actor, role.ManageBranch)
	if err != nil {
		return nil, err
	}
	admin, err := s.stores.Staff.FindInClient(ctx, staffID, manager.ClientID, role.SystemAdmin)
	if err != nil {
		log.Error().Err(err).Int64("staffId", staffID).Msg("error while fetching system admin")
		return nil, err
	}
	if admin == nil {
		return nil, util.NewError(util.KindNotFound, util.STAFF_NOT_SYSTEM_ADMIN)
	}
	branch, err := s.stores.Branches.AddSystemAdmin(ctx, branchID, manager.ClientID, staffID)
	if err != nil {
		log.Error().Err(err).Int64("branchId", branchID).Msg("error while assigning system admin")
		return nil, err
	}
	if branch == nil {
		return nil, util.NewError(util.KindNotFound, util.BRANCH_NOT_FOUND)
	}
	return &util.Outcome{Message: "System admin assigned successfully", Data: branch}, nil
}
