package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/util"
)

type RobotService struct {
	stores    Stores
	directory *Directory
	now       func() time.Time
}

func NewRobotService(stores Stores, directory *Directory) *RobotService {
	return &RobotService{stores: stores, directory: directory, now: time.Now}
}

// branchInClient confirms the branch belongs to the actor's client.
func (s *RobotService) branchInClient(ctx context.Context, branchID, clientID int64) error {
	branch, err := s.stores.Branches.FindInClient(ctx, branchID, clientID)
	if err != nil {
		log.Error().Err(err).Int64("branchId", branchID).Msg("error while fetching branch")
		return err
	}
	if branch == nil {
		return util.NewError(util.KindNotFound, util.BRANCH_NOT_FOUND)
	}
	return nil
}

/*
* Branch must belong to the actor's client
* Registration id is unique across robots
 */
func (s *RobotService) CreateRobot(ctx context.Context, actor models.Actor, branchID int64, registrationID string) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ManageRobot)
	if err != nil {
		return nil, err
	}
	if err := s.branchInClient(ctx, branchID, staff.ClientID); err != nil {
		return nil, err
	}
	now := s.now()
	robot := &models.Robot{
		RegistrationID: registrationID,
		BranchID:       branchID,
		CreatedBy:      actor.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.stores.Robots.Create(ctx, robot); err != nil {
		log.Error().Err(err).Str("registrationId", registrationID).Msg("error while creating robot")
		return nil, err
	}
	return &util.Outcome{Message: "Robot created successfully", Data: robot}, nil
}

func (s *RobotService) ListRobots(ctx context.Context, actor models.Actor, branchID int64) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ViewRobot)
	if err != nil {
		return nil, err
	}
	if err := s.branchInClient(ctx, branchID, staff.ClientID); err != nil {
		return nil, err
	}
	robots, err := s.stores.Robots.ListByBranch(ctx, branchID)
	if err != nil {
		log.Error().Err(err).Int64("branchId", branchID).Msg("error while listing robots")
		return nil, err
	}
	return &util.Outcome{Message: "Robots fetched successfully", Data: robots}, nil
}

func (s *RobotService) SetMaintenance(ctx context.Context, actor models.Actor, branchID, robotID int64, underMaintenance bool) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ManageRobot)
	if err != nil {
		return nil, err
	}
	if err := s.branchInClient(ctx, branchID, staff.ClientID); err != nil {
		return nil, err
	}
	robot, err := s.stores.Robots.SetMaintenance(ctx, robotID, branchID, underMaintenance)
	if err != nil {
		log.Error().Err(err).Int64("robotId", robotID).Msg("error while updating robot")
		return nil, err
	}
	if robot == nil {
		return nil, util.NewError(util.KindNotFound, util.ROBOT_NOT_FOUND)
	}
	return &util.Outcome{Message: "Robot updated successfully", Data: robot}, nil
}
