package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roktoSheba/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RequestCollection = "request"

type RequestRepository struct {
	coll *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{
		coll: db.Collection(RequestCollection),
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.BloodRequest) (domain.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, req)
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("failed to insert request: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	req.ID = id

	return domain.InsertResult{Acknowledged: true, InsertedID: id.Hex()}, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (domain.BloodRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.BloodRequest{}, domain.ErrInvalidID
	}

	var req domain.BloodRequest
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.BloodRequest{}, domain.ErrNotFound
		}
		return domain.BloodRequest{}, fmt.Errorf("failed to find request: %w", err)
	}

	return req, nil
}

func (r *RequestRepository) Update(ctx context.Context, id string, patch domain.RequestPatch, now time.Time) (domain.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.UpdateResult{}, domain.ErrInvalidID
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": requestPatchSet(patch, now)})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("failed to update request: %w", err)
	}

	return domain.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

func (r *RequestRepository) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.DeleteResult{}, domain.ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("failed to delete request: %w", err)
	}

	return domain.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func (r *RequestRepository) FindByRequester(ctx context.Context, email string, page, limit int) ([]domain.BloodRequest, int64, error) {
	return findPage[domain.BloodRequest](ctx, r.coll, requesterFilter(email), nil, page, limit)
}

func (r *RequestRepository) FindAll(ctx context.Context, q domain.RequestQuery) ([]domain.BloodRequest, int64, error) {
	return findPage[domain.BloodRequest](ctx, r.coll, adminRequestFilter(q), newestFirst, q.Page, q.Limit)
}

func (r *RequestRepository) Search(ctx context.Context, q domain.SearchQuery) ([]domain.BloodRequest, int64, error) {
	return findPage[domain.BloodRequest](ctx, r.coll, searchFilter(q), nil, q.Page, q.Limit)
}

func (r *RequestRepository) Recent(ctx context.Context, n int) ([]domain.BloodRequest, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst).SetLimit(int64(n)))
	if err != nil {
		return nil, fmt.Errorf("failed to find recent requests: %w", err)
	}

	reqs := make([]domain.BloodRequest, 0, n)
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("failed to decode recent requests: %w", err)
	}

	return reqs, nil
}

func (r *RequestRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return n, nil
}
