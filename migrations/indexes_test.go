package migrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"RoboScan360/util"
)

func TestIndexesCoverEveryCollection(t *testing.T) {
	indexes := Indexes()
	for _, collection := range []string{
		util.ClientCollection, util.StaffCollection, util.DoctorProfileCollection,
		util.BranchCollection, util.RobotCollection, util.PatientCollection,
		util.AppointmentCollection, util.ReportCollection,
	} {
		models, ok := indexes[collection]
		require.True(t, ok, collection)
		assert.Equal(t, bson.D{{Key: "id", Value: 1}}, models[0].Keys, collection)
		assert.True(t, *models[0].Options.Unique, collection)
	}
}

func TestBillingIndexIsPartial(t *testing.T) {
	billing := Indexes()[util.AppointmentCollection][1]
	assert.Equal(t, "billingId_unique_when_set", *billing.Options.Name)
	assert.Equal(t, bson.M{"billingId": bson.M{"$type": "string", "$gt": ""}}, billing.Options.PartialFilterExpression)
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates on every collection", func(mt *mtest.T) {
		for range Indexes() {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}
		assert.NoError(t, EnsureIndexes(context.Background(), mt.DB))
	})

	mt.Run("stops at the first failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 85, Message: "index options conflict", Name: "IndexOptionsConflict",
		}))
		assert.Error(t, EnsureIndexes(context.Background(), mt.DB))
	})
}
