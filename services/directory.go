package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/util"
)

// Directory resolves an actor to its staff record and answers capability
// questions against the injected role table.
type Directory struct {
	staff StaffStore
	roles role.Config
}

func NewDirectory(staff StaffStore, roles role.Config) *Directory {
	return &Directory{staff: staff, roles: roles}
}

/*
* Find the staff record behind the actor
* Archived staff are treated as absent
 */
func (d *Directory) ResolveActor(ctx context.Context, actor models.Actor) (*models.Staff, error) {
	staff, err := d.staff.FindByID(ctx, actor.ID)
	if err != nil {
		log.Error().Err(err).Int64("actorId", actor.ID).Msg("error while fetching actor")
		return nil, err
	}
	if staff == nil || staff.IsArchived {
		return nil, util.NewError(util.KindActorNotFound, util.USER_NOT_FOUND)
	}
	return staff, nil
}

func (d *Directory) Authorize(actor models.Actor, capability role.Capability) error {
	if !d.roles.Can(actor.Role, capability) {
		return util.NewError(util.KindForbidden, util.USER_DOESNOT_HAVE_ACCESS)
	}
	return nil
}

// ResolveAuthorized resolves the actor then checks capability.
func (d *Directory) ResolveAuthorized(ctx context.Context, actor models.Actor, capability role.Capability) (*models.Staff, error) {
	staff, err := d.ResolveActor(ctx, actor)
	if err != nil {
		return nil, err
	}
	if err := d.Authorize(actor, capability); err != nil {
		log.Warn().Int64("actorId", actor.ID).Str("role", string(actor.Role)).Str("capability", string(capability)).Msg("actor lacks capability")
		return nil, err
	}
	return staff, nil
}
