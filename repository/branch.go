package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"RoboScan360/config/db"
	"RoboScan360/models"
	"RoboScan360/util"
)

type BranchRepository struct {
	database *mongo.Database
}

func (r *BranchRepository) coll() *mongo.Collection {
	return r.database.Collection(util.BranchCollection)
}

func (r *BranchRepository) FindInClient(ctx context.Context, id, clientID int64) (*models.Branch, error) {
	return findOne[models.Branch](ctx, r.coll(), bson.M{"id": id, "clientId": clientID})
}

func (r *BranchRepository) Create(ctx context.Context, branch *models.Branch) error {
	return insertWithID(ctx, r.database, util.BranchCollection, func(id int64) { branch.ID = id }, branch)
}

func (r *BranchRepository) List(ctx context.Context, clientID int64) ([]models.Branch, error) {
	return db.FindAll[models.Branch](ctx, r.coll(), bson.M{"clientId": clientID}, byID)
}

func (r *BranchRepository) AddSystemAdmin(ctx context.Context, id, clientID, staffID int64) (*models.Branch, error) {
	return findOneAndUpdate[models.Branch](ctx, r.coll(),
		bson.M{"id": id, "clientId": clientID},
		bson.M{
			"$addToSet": bson.M{"systemAdmins": staffID},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
}

type RobotRepository struct {
	database *mongo.Database
}

func (r *RobotRepository) coll() *mongo.Collection {
	return r.database.Collection(util.RobotCollection)
}

func (r *RobotRepository) FindInBranch(ctx context.Context, id, branchID int64) (*models.Robot, error) {
	return findOne[models.Robot](ctx, r.coll(), bson.M{"id": id, "branchId": branchID})
}

func (r *RobotRepository) Create(ctx context.Context, robot *models.Robot) error {
	return insertWithID(ctx, r.database, util.RobotCollection, func(id int64) { robot.ID = id }, robot)
}

func (r *RobotRepository) ListByBranch(ctx context.Context, branchID int64) ([]models.Robot, error) {
	return db.FindAll[models.Robot](ctx, r.coll(), bson.M{"branchId": branchID}, byID)
}

func (r *RobotRepository) SetMaintenance(ctx context.Context, id, branchID int64, underMaintenance bool) (*models.Robot, error) {
	return findOneAndUpdate[models.Robot](ctx, r.coll(),
		bson.M{"id": id, "branchId": branchID},
		bson.M{"$set": bson.M{"isUnderMaintenance": underMaintenance, "updatedAt": time.Now()}},
	)
}
