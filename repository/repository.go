package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"RoboScan360/config/db"
	"RoboScan360/services"
)

// New wires a Mongo backed store for every collection the services use.
func New(database *mongo.Database) services.Stores {
	return services.Stores{
		Staff:        &StaffRepository{database: database},
		Profiles:     &DoctorProfileRepository{database: database},
		Clients:      &ClientRepository{database: database},
		Branches:     &BranchRepository{database: database},
		Robots:       &RobotRepository{database: database},
		Patients:     &PatientRepository{database: database},
		Appointments: &AppointmentRepository{database: database},
		Reports:      &ReportRepository{database: database},
	}
}

var byID = options.Find().SetSort(bson.D{{Key: "id", Value: 1}})

// findOne decodes a single match, or returns nil when nothing matched.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) (*T, error) {
	var out T
	if err := db.FindOne(ctx, coll, filter, &out); err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func findOneAndUpdate[T any](ctx context.Context, coll *mongo.Collection, filter, update interface{}) (*T, error) {
	var out T
	if err := db.FindOneAndUpdate(ctx, coll, filter, update, &out); err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

/*
* Take the next id from the collection counter
* Insert the document with it
 */
func insertWithID(ctx context.Context, database *mongo.Database, collection string, assign func(int64), doc interface{}) error {
	id, err := db.NextID(ctx, database, collection)
	if err != nil {
		return err
	}
	assign(id)
	_, err = db.CreateOne(ctx, database.Collection(collection), doc)
	return err
}

// archive flips isArchived on one live document scoped by id and client.
func archive(ctx context.Context, coll *mongo.Collection, id, clientID int64, now interface{}) (bool, error) {
	res, err := db.UpdateOne(ctx, coll,
		bson.M{"id": id, "clientId": clientID, "isArchived": false},
		bson.M{"$set": bson.M{"isArchived": true, "updatedAt": now}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
