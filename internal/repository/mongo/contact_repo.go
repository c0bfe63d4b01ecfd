package mongo

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type contactRepo struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) domain.ContactRepository {
	return &contactRepo{col: db.Collection("contacts")}
}

func (r *contactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, contact)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		contact.ID = oid
	}
	return nil
}

func (r *contactRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&contact)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepo) FetchByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Contact, int64, error) {
	query := bson.M{"user_id": userID}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, query,
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64(offset)).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var contacts []domain.Contact
	if err := cur.All(ctx, &contacts); err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// facetBucket is one $group result inside the stats facet.
type facetBucket struct {
	ID    string `bson:"_id"`
	Count int64  `bson:"count"`
}

type statsFacet struct {
	Total      []facetBucket `bson:"total"`
	ByStatus   []facetBucket `bson:"byStatus"`
	ByCategory []facetBucket `bson:"byCategory"`
	ByPriority []facetBucket `bson:"byPriority"`
}

// Stats aggregates all three enum dimensions in one $facet pipeline pass.
func (r *contactRepo) Stats(ctx context.Context) (*domain.ContactStats, error) {
	groupBy := func(field string) bson.A {
		return bson.A{bson.M{"$group": bson.M{
			"_id":   field,
			"count": bson.M{"$sum": 1},
		}}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"total":      bson.A{bson.M{"$group": bson.M{"_id": nil, "count": bson.M{"$sum": 1}}}},
			"byStatus":   groupBy("$status"),
			"byCategory": groupBy("$category"),
			"byPriority": groupBy("$priority"),
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var facets []statsFacet
	if err := cur.All(ctx, &facets); err != nil {
		return nil, err
	}

	stats := &domain.ContactStats{
		ByStatus:   map[string]int64{},
		ByCategory: map[string]int64{},
		ByPriority: map[string]int64{},
	}
	if len(facets) == 0 {
		return stats, nil
	}

	f := facets[0]
	if len(f.Total) > 0 {
		stats.Total = f.Total[0].Count
	}
	for _, b := range f.ByStatus {
		stats.ByStatus[b.ID] = b.Count
	}
	for _, b := range f.ByCategory {
		stats.ByCategory[b.ID] = b.Count
	}
	for _, b := range f.ByPriority {
		stats.ByPriority[b.ID] = b.Count
	}
	return stats, nil
}

func (r *contactRepo) AttachResponse(ctx context.Context, id primitive.ObjectID, resp *domain.ContactResponse) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"response":   resp,
			"status":     domain.ContactStatusResolved,
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
