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

// catalogCounter numbers departments and report templates across clients.
const catalogCounter = "CATALOG"

type ClientRepository struct {
	database *mongo.Database
}

func (r *ClientRepository) coll() *mongo.Collection {
	return r.database.Collection(util.ClientCollection)
}

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*models.Client, error) {
	return findOne[models.Client](ctx, r.coll(), bson.M{"id": id})
}

func (r *ClientRepository) update(ctx context.Context, filter bson.M, change bson.M) (*models.Client, error) {
	change["$set"] = bson.M{"updatedAt": time.Now()}
	return findOneAndUpdate[models.Client](ctx, r.coll(), filter, change)
}

func (r *ClientRepository) AddScanType(ctx context.Context, id int64, scanType string) (*models.Client, error) {
	return r.update(ctx, bson.M{"id": id}, bson.M{"$addToSet": bson.M{"scanTypes": scanType}})
}

func (r *ClientRepository) RemoveScanType(ctx context.Context, id int64, scanType string) (*models.Client, error) {
	return r.update(ctx, bson.M{"id": id}, bson.M{"$pull": bson.M{"scanTypes": scanType}})
}

func (r *ClientRepository) AddDepartment(ctx context.Context, id int64, department models.Department) (*models.Client, error) {
	return r.update(ctx, bson.M{"id": id}, bson.M{"$push": bson.M{"departments": department}})
}

func (r *ClientRepository) ArchiveDepartment(ctx context.Context, id, departmentID int64) (*models.Client, error) {
	return findOneAndUpdate[models.Client](ctx, r.coll(),
		bson.M{"id": id, "departments.id": departmentID},
		bson.M{"$set": bson.M{"departments.$.isArchived": true, "updatedAt": time.Now()}},
	)
}

func (r *ClientRepository) AddReportTemplate(ctx context.Context, id int64, template models.ReportTemplate) (*models.Client, error) {
	return r.update(ctx, bson.M{"id": id}, bson.M{"$push": bson.M{"reportTemplates": template}})
}

func (r *ClientRepository) ArchiveReportTemplate(ctx context.Context, id, templateID int64) (*models.Client, error) {
	return findOneAndUpdate[models.Client](ctx, r.coll(),
		bson.M{"id": id, "reportTemplates.id": templateID},
		bson.M{"$set": bson.M{"reportTemplates.$.isArchived": true, "updatedAt": time.Now()}},
	)
}

func (r *ClientRepository) NextCatalogID(ctx context.Context) (int64, error) {
	return db.NextID(ctx, r.database, catalogCounter)
}
