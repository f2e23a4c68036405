package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"RoboScan360/config/db"
	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/util"
)

type StaffRepository struct {
	database *mongo.Database
}

func (r *StaffRepository) coll() *mongo.Collection {
	return r.database.Collection(util.StaffCollection)
}

func (r *StaffRepository) FindByID(ctx context.Context, id int64) (*models.Staff, error) {
	return findOne[models.Staff](ctx, r.coll(), bson.M{"id": id})
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*models.Staff, error) {
	return findOne[models.Staff](ctx, r.coll(), bson.M{"email": email})
}

func (r *StaffRepository) FindInClient(ctx context.Context, id, clientID int64, rl role.Role) (*models.Staff, error) {
	return findOne[models.Staff](ctx, r.coll(), bson.M{
		"id":         id,
		"clientId":   clientID,
		"role":       rl,
		"isArchived": false,
	})
}

/*
* Match the staff, join its doctor profile
* Only staff with a profile have a doctor name
 */
func (r *StaffRepository) DoctorName(ctx context.Context, staffID int64) (string, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"id": staffID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         util.DoctorProfileCollection,
			"localField":   "doctorProfileId",
			"foreignField": "id",
			"as":           "profile",
		}}},
		{{Key: "$unwind", Value: "$profile"}},
		{{Key: "$project", Value: bson.M{"_id": 0, "name": 1}}},
		{{Key: "$limit", Value: 1}},
	}
	cursor, err := r.coll().Aggregate(ctx, pipeline)
	if err != nil {
		return "", err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Name string `bson:"name"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].Name, nil
}

func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	return insertWithID(ctx, r.database, util.StaffCollection, func(id int64) { staff.ID = id }, staff)
}

func (r *StaffRepository) List(ctx context.Context, clientID int64, rl role.Role) ([]models.Staff, error) {
	filter := bson.M{"clientId": clientID, "isArchived": false}
	if rl != "" {
		filter["role"] = rl
	}
	return db.FindAll[models.Staff](ctx, r.coll(), filter, byID)
}

func (r *StaffRepository) Archive(ctx context.Context, id, clientID int64) (bool, error) {
	return archive(ctx, r.coll(), id, clientID, time.Now())
}

type DoctorProfileRepository struct {
	database *mongo.Database
}

func (r *DoctorProfileRepository) coll() *mongo.Collection {
	return r.database.Collection(util.DoctorProfileCollection)
}

func (r *DoctorProfileRepository) Create(ctx context.Context, profile *models.DoctorProfile) error {
	return insertWithID(ctx, r.database, util.DoctorProfileCollection, func(id int64) { profile.ID = id }, profile)
}

func (r *DoctorProfileRepository) FindByID(ctx context.Context, id int64) (*models.DoctorProfile, error) {
	return findOne[models.DoctorProfile](ctx, r.coll(), bson.M{"id": id})
}

func (r *DoctorProfileRepository) Delete(ctx context.Context, id int64) error {
	_, err := db.DeleteOne(ctx, r.coll(), bson.M{"id": id})
	return err
}
