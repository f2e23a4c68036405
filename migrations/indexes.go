package migrations

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"RoboScan360/util"
)

func uniqueOn(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(field + "_unique"),
	}
}

// uniqueWhenSet only constrains documents that carry a non-empty string
// in field.
func uniqueWhenSet(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{{Key: field, Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName(field + "_unique_when_set").
			SetPartialFilterExpression(bson.M{field: bson.M{"$type": "string", "$gt": ""}}),
	}
}

func lookup(name string, fields ...string) mongo.IndexModel {
	keys := bson.D{}
	for _, f := range fields {
		keys = append(keys, bson.E{Key: f, Value: 1})
	}
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

// Indexes lists every index the repositories rely on, per collection.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		util.ClientCollection:        {uniqueOn("id"), uniqueOn("name")},
		util.StaffCollection:         {uniqueOn("id"), uniqueOn("email"), lookup("client_role", "clientId", "role")},
		util.DoctorProfileCollection: {uniqueOn("id"), uniqueOn("registrationId")},
		util.BranchCollection:        {uniqueOn("id"), lookup("client", "clientId")},
		util.RobotCollection:         {uniqueOn("id"), uniqueOn("registrationId"), lookup("branch", "branchId")},
		util.PatientCollection:       {uniqueOn("id"), uniqueWhenSet("opId"), lookup("client", "clientId")},
		util.AppointmentCollection: {
			uniqueOn("id"),
			uniqueWhenSet("billingId"),
			lookup("client_doctor_date", "clientId", "doctorId", "date"),
			lookup("status_conference", "status", "conference"),
		},
		util.ReportCollection: {uniqueOn("id"), uniqueOn("appointmentId")},
	}
}

/*
* Create the indexes of every collection
* Creating an existing index with the same options is a no-op
 */
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for collection, models := range Indexes() {
		names, err := database.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			log.Error().Err(err).Str("collection", collection).Msg("index creation failed")
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
		log.Info().Str("collection", collection).Strs("indexes", names).Msg("indexes ensured")
	}
	return nil
}
