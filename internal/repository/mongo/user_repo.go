package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepo struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) domain.UserRepository {
	return &userRepo{col: db.Collection("users")}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Applications == nil {
		user.Applications = []domain.Application{}
	}
	if user.SavedJobs == nil {
		user.SavedJobs = []primitive.ObjectID{}
	}

	res, err := r.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *userRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	var user domain.User
	err := r.col.FindOne(ctx, bson.M{"external_id": externalID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureByExternalID upserts in a single FindOneAndUpdate so concurrent
// first-contact requests cannot race into two documents; the unique index
// on external_id backs this up.
func (r *userRepo) EnsureByExternalID(ctx context.Context, defaults *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$setOnInsert": bson.M{
			"external_id":  defaults.ExternalID,
			"email":        strings.ToLower(strings.TrimSpace(defaults.Email)),
			"first_name":   defaults.FirstName,
			"last_name":    defaults.LastName,
			"user_type":    defaults.UserType,
			"applications": bson.A{},
			"saved_jobs":   bson.A{},
			"created_at":   now,
		},
		"$set": bson.M{"updated_at": now},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user domain.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"external_id": defaults.ExternalID}, update, opts).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"external_id": user.ExternalID},
		bson.M{"$set": bson.M{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"phone":      user.Phone,
			"location":   user.Location,
			"bio":        user.Bio,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendApplication pushes the subdocument with a filter that excludes
// documents already holding an application for the job, so the duplicate
// check and the append are one atomic store operation. Callers must have
// ensured the user exists: a zero match then means duplicate.
func (r *userRepo) AppendApplication(ctx context.Context, externalID string, app *domain.Application) error {
	filter := bson.M{
		"external_id":         externalID,
		"applications.job_id": bson.M{"$ne": app.JobID},
	}
	update := bson.M{
		"$push": bson.M{"applications": app},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

func (r *userRepo) UpdateApplicationStatus(ctx context.Context, externalID string, applicationID primitive.ObjectID, status string) error {
	filter := bson.M{
		"external_id":      externalID,
		"applications._id": applicationID,
	}
	update := bson.M{"$set": bson.M{
		"applications.$.status": status,
		"updated_at":            time.Now().UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) FindByAppliedJob(ctx context.Context, jobID primitive.ObjectID) ([]domain.User, error) {
	cur, err := r.col.Find(ctx, bson.M{"applications.job_id": jobID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) AddSavedJob(ctx context.Context, externalID string, jobID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"external_id": externalID},
		bson.M{
			"$addToSet": bson.M{"saved_jobs": jobID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) RemoveSavedJob(ctx context.Context, externalID string, jobID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"external_id": externalID},
		bson.M{
			"$pull": bson.M{"saved_jobs": jobID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
