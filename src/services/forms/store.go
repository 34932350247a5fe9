package forms

import (
	"context"
	"fmt"

	"Backend-Formgenie-007/src/database"
	"Backend-Formgenie-007/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the persistence boundary of the lifecycle. The two limit
// operations are conditional updates so check-then-act races cannot push a
// user past the daily quota or a form past the revision cap.
type Store interface {
	InsertForm(ctx context.Context, form *models.Form) error
	FindForm(ctx context.Context, id primitive.ObjectID) (*models.Form, error)
	ListForms(ctx context.Context, userID primitive.ObjectID) ([]models.Form, error)
	// AppendRevision pushes to history and revisionHistory in one update,
	// guarded by the revision cap. Returns false when the cap is full.
	AppendRevision(ctx context.Context, id primitive.ObjectID, schema models.StorageSchema, entry models.RevisionEntry) (bool, error)
	// IncrementQuota claims one generation slot for the given day.
	// Returns false when the daily limit is already spent.
	IncrementQuota(ctx context.Context, userID primitive.ObjectID, day string, limit int) (bool, error)
	DecrementQuota(ctx context.Context, userID primitive.ObjectID, day string) error
	QuotaCount(ctx context.Context, userID primitive.ObjectID, day string) (int, error)
	FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	AppendFinalized(ctx context.Context, userID primitive.ObjectID, entry models.FinalizedForm) error
}

type mongoStore struct {
	forms  *mongo.Collection
	users  *mongo.Collection
	quotas *mongo.Collection
}

// NewMongoStore wires the store to the shared MongoDB connection.
func NewMongoStore() Store {
	return &mongoStore{
		forms:  database.GetCollection(database.DBName, "forms"),
		users:  database.GetCollection(database.DBName, "users"),
		quotas: database.GetCollection(database.DBName, "quotas"),
	}
}

func (s *mongoStore) InsertForm(ctx context.Context, form *models.Form) error {
	result, err := s.forms.InsertOne(ctx, form)
	if err != nil {
		return err
	}
	form.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoStore) FindForm(ctx context.Context, id primitive.ObjectID) (*models.Form, error) {
	var form models.Form
	err := s.forms.FindOne(ctx, bson.M{"_id": id}).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrFormNotFound
		}
		return nil, err
	}
	return &form, nil
}

func (s *mongoStore) ListForms(ctx context.Context, userID primitive.ObjectID) ([]models.Form, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.forms.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var forms []models.Form
	if err = cursor.All(ctx, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

func (s *mongoStore) AppendRevision(ctx context.Context, id primitive.ObjectID, schema models.StorageSchema, entry models.RevisionEntry) (bool, error) {
	// Matches only while the last allowed slot is still free, so two racing
	// revise calls cannot both land past the cap.
	capGuard := fmt.Sprintf("revisionHistory.%d", models.MaxRevisions-1)
	filter := bson.M{
		"_id":    id,
		capGuard: bson.M{"$exists": false},
	}
	update := bson.M{
		"$push": bson.M{
			"history":         schema,
			"revisionHistory": entry,
		},
		"$set": bson.M{"updatedAt": entry.RevisedAt},
	}

	result, err := s.forms.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 0 {
		// Either the form is gone or the cap is full — look again to tell.
		if _, err := s.FindForm(ctx, id); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (s *mongoStore) IncrementQuota(ctx context.Context, userID primitive.ObjectID, day string, limit int) (bool, error) {
	// Make sure a counter document exists, then roll a stale day over to
	// today before the conditional increment.
	upsert := options.Update().SetUpsert(true)
	_, err := s.quotas.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$setOnInsert": bson.M{"count": 0, "date": day}},
		upsert,
	)
	if err != nil {
		return false, err
	}
	_, err = s.quotas.UpdateOne(ctx,
		bson.M{"userId": userID, "date": bson.M{"$ne": day}},
		bson.M{"$set": bson.M{"count": 0, "date": day}},
	)
	if err != nil {
		return false, err
	}

	result, err := s.quotas.UpdateOne(ctx,
		bson.M{"userId": userID, "date": day, "count": bson.M{"$lt": limit}},
		bson.M{"$inc": bson.M{"count": 1}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

func (s *mongoStore) DecrementQuota(ctx context.Context, userID primitive.ObjectID, day string) error {
	_, err := s.quotas.UpdateOne(ctx,
		bson.M{"userId": userID, "date": day, "count": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"count": -1}},
	)
	return err
}

func (s *mongoStore) QuotaCount(ctx context.Context, userID primitive.ObjectID, day string) (int, error) {
	var counter models.QuotaCounter
	err := s.quotas.FindOne(ctx, bson.M{"userId": userID}).Decode(&counter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}
	if counter.Date != day {
		return 0, nil
	}
	return counter.Count, nil
}

func (s *mongoStore) FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *mongoStore) AppendFinalized(ctx context.Context, userID primitive.ObjectID, entry models.FinalizedForm) error {
	result, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"finalizedForms": entry}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
