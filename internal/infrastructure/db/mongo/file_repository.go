package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Nabin-web/startrace/internal/core/domain"
)

const fileCollection = "files"

type MongoFileRepository struct {
	coll *mongo.Collection
}

func NewFileRepository(db *mongo.Database) *MongoFileRepository {
	return &MongoFileRepository{coll: db.Collection(fileCollection)}
}

type mongoFile struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Size             int64              `bson:"size"`
	CreatedAt        int64              `bson:"created_at"`
	UploaderID       string             `bson:"uploader_id"`
	UploaderUsername string             `bson:"uploader_username"`
	Path             string             `bson:"path"`
}

func (r *MongoFileRepository) Create(ctx context.Context, record *domain.FileRecord) (*domain.FileRecord, error) {
	doc := mongoFile{
		Name:             record.Name,
		Size:             record.Size,
		CreatedAt:        record.CreatedAt.Unix(),
		UploaderID:       record.UploaderID,
		UploaderUsername: record.UploaderUsername,
		Path:             record.Path,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert file record: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *MongoFileRepository) FindByID(ctx context.Context, id string) (*domain.FileRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFileNotFound
	}

	var mf mongoFile
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mf); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("find file record: %w", err)
	}
	return mf.toDomain(), nil
}

func (r *MongoFileRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrFileNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete file record: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFileNotFound
	}
	return nil
}

func (r *MongoFileRepository) List(ctx context.Context) ([]*domain.FileRecord, error) {
	// Newest first so fresh uploads lead the listing.
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list file records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.FileRecord
	for cursor.Next(ctx) {
		var mf mongoFile
		if err := cursor.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode file record: %w", err)
		}
		records = append(records, mf.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list file records: %w", err)
	}
	return records, nil
}

func (mf *mongoFile) toDomain() *domain.FileRecord {
	return &domain.FileRecord{
		ID:               mf.ID.Hex(),
		Name:             mf.Name,
		Size:             mf.Size,
		CreatedAt:        unixToTime(mf.CreatedAt),
		UploaderID:       mf.UploaderID,
		UploaderUsername: mf.UploaderUsername,
		Path:             mf.Path,
	}
}
