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

type AppointmentRepository struct {
	database *mongo.Database
}

func (r *AppointmentRepository) coll() *mongo.Collection {
	return r.database.Collection(util.AppointmentCollection)
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return insertWithID(ctx, r.database, util.AppointmentCollection, func(id int64) { appointment.ID = id }, appointment)
}

func (r *AppointmentRepository) ExistsByBillingID(ctx context.Context, billingID string, excludeID int64) (bool, error) {
	filter := bson.M{"billingId": billingID}
	if excludeID != 0 {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return db.Exists(ctx, r.coll(), filter)
}

func (r *AppointmentRepository) FindInClient(ctx context.Context, id, clientID int64) (*models.Appointment, error) {
	return findOne[models.Appointment](ctx, r.coll(), bson.M{"id": id, "clientId": clientID})
}

func appointmentFilter(filter models.AppointmentFilter) bson.M {
	query := bson.M{"clientId": filter.ClientID}
	if filter.DoctorID != 0 {
		query["doctorId"] = filter.DoctorID
	}
	if filter.BranchID != 0 {
		query["branchId"] = filter.BranchID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}
	return query
}

func (r *AppointmentRepository) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	return db.FindAll[models.Appointment](ctx, r.coll(), appointmentFilter(filter), byID)
}

/*
* Set every editable field by name
* An empty billing id is removed so the partial unique index skips it
 */
func (r *AppointmentRepository) Replace(ctx context.Context, id, clientID int64, edit models.AppointmentEdit) (*models.Appointment, error) {
	set := bson.M{
		"branchId":              edit.BranchID,
		"robotId":               edit.RobotID,
		"doctorId":              edit.DoctorID,
		"date":                  edit.Date,
		"time":                  edit.Time,
		"scanType":              edit.ScanType,
		"differentialDiagnosis": edit.DifferentialDiagnosis,
		"conference":            edit.Conference,
		"updatedAt":             time.Now(),
	}
	update := bson.M{"$set": set}
	if edit.BillingID != "" {
		set["billingId"] = edit.BillingID
	} else {
		update["$unset"] = bson.M{"billingId": ""}
	}
	return findOneAndUpdate[models.Appointment](ctx, r.coll(), bson.M{"id": id, "clientId": clientID}, update)
}

func (r *AppointmentRepository) Reschedule(ctx context.Context, id, clientID int64, date, clock string, conference *models.ConferenceLinks) (*models.Appointment, error) {
	return findOneAndUpdate[models.Appointment](ctx, r.coll(),
		bson.M{"id": id, "clientId": clientID},
		bson.M{"$set": bson.M{"date": date, "time": clock, "conference": conference, "updatedAt": time.Now()}},
	)
}

func (r *AppointmentRepository) DeleteInClient(ctx context.Context, id, clientID int64) (*models.Appointment, error) {
	var out models.Appointment
	if err := db.FindOneAndDelete(ctx, r.coll(), bson.M{"id": id, "clientId": clientID}, &out); err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// ListMissingConference matches both a null and an absent conference.
func (r *AppointmentRepository) ListMissingConference(ctx context.Context) ([]models.Appointment, error) {
	return db.FindAll[models.Appointment](ctx, r.coll(),
		bson.M{"status": models.StatusUpComing, "conference": nil}, byID)
}

func (r *AppointmentRepository) SetConference(ctx context.Context, id int64, conference *models.ConferenceLinks) error {
	_, err := db.UpdateOne(ctx, r.coll(),
		bson.M{"id": id},
		bson.M{"$set": bson.M{"conference": conference, "updatedAt": time.Now()}},
	)
	return err
}

func (r *AppointmentRepository) MarkReportSent(ctx context.Context, id int64) error {
	_, err := db.UpdateOne(ctx, r.coll(),
		bson.M{"id": id},
		bson.M{"$set": bson.M{"isReportSent": true, "updatedAt": time.Now()}},
	)
	return err
}
