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

type PatientRepository struct {
	database *mongo.Database
}

func (r *PatientRepository) coll() *mongo.Collection {
	return r.database.Collection(util.PatientCollection)
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return insertWithID(ctx, r.database, util.PatientCollection, func(id int64) { patient.ID = id }, patient)
}

func (r *PatientRepository) FindOne(ctx context.Context, lookup models.PatientLookup) (*models.Patient, error) {
	filter := bson.M{"id": lookup.ID, "clientId": lookup.ClientID}
	if lookup.OpID != "" {
		filter["opId"] = lookup.OpID
	}
	return findOne[models.Patient](ctx, r.coll(), filter)
}

func (r *PatientRepository) ExistsByOpID(ctx context.Context, opID string) (bool, error) {
	return db.Exists(ctx, r.coll(), bson.M{"opId": opID})
}

func (r *PatientRepository) List(ctx context.Context, clientID int64) ([]models.Patient, error) {
	return db.FindAll[models.Patient](ctx, r.coll(), bson.M{"clientId": clientID, "isArchived": false}, byID)
}

// patientSet builds the $set document from the fields present in update.
func patientSet(update models.PatientUpdate) bson.M {
	set := bson.M{"updatedAt": time.Now()}
	put := func(key string, value *string) {
		if value != nil {
			set[key] = *value
		}
	}
	put("mobileNumber", update.MobileNumber)
	put("name", update.Name)
	put("email", update.Email)
	put("gender", update.Gender)
	put("pinCode", update.PinCode)
	put("eId", update.EID)
	put("address", update.Address)
	if update.Age != nil {
		set["age"] = *update.Age
	}
	if update.ActionRequired != nil {
		set["actionRequired"] = *update.ActionRequired
	}
	return set
}

func (r *PatientRepository) Update(ctx context.Context, id, clientID int64, update models.PatientUpdate) (*models.Patient, error) {
	return findOneAndUpdate[models.Patient](ctx, r.coll(),
		bson.M{"id": id, "clientId": clientID, "isArchived": false},
		bson.M{"$set": patientSet(update)},
	)
}

func (r *PatientRepository) Archive(ctx context.Context, id, clientID int64) (bool, error) {
	return archive(ctx, r.coll(), id, clientID, time.Now())
}

func (r *PatientRepository) Delete(ctx context.Context, id int64) error {
	_, err := db.DeleteOne(ctx, r.coll(), bson.M{"id": id})
	return err
}
