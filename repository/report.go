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

type ReportRepository struct {
	database *mongo.Database
}

func (r *ReportRepository) coll() *mongo.Collection {
	return r.database.Collection(util.ReportCollection)
}

func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	return insertWithID(ctx, r.database, util.ReportCollection, func(id int64) { report.ID = id }, report)
}

func (r *ReportRepository) ExistsForAppointment(ctx context.Context, appointmentID int64) (bool, error) {
	return db.Exists(ctx, r.coll(), bson.M{"appointmentId": appointmentID})
}

// FindAndCountView increments viewCount and returns the counted document.
func (r *ReportRepository) FindAndCountView(ctx context.Context, id, clientID int64) (*models.Report, error) {
	return findOneAndUpdate[models.Report](ctx, r.coll(),
		bson.M{"id": id, "clientId": clientID, "isArchived": false},
		bson.M{"$inc": bson.M{"viewCount": 1}},
	)
}

func (r *ReportRepository) Archive(ctx context.Context, id, clientID int64) (bool, error) {
	return archive(ctx, r.coll(), id, clientID, time.Now())
}
