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
)

const UserCollection = "user"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		coll: db.Collection(UserCollection),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (domain.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("failed to insert user: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	user.ID = id

	return domain.InsertResult{Acknowledged: true, InsertedID: id.Hex()}, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	users := make([]domain.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User

	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, email, status string) (domain.UpdateResult, error) {
	return r.update(ctx, email, bson.M{"status": status})
}

func (r *UserRepository) UpdateRole(ctx context.Context, email, role string) (domain.UpdateResult, error) {
	return r.update(ctx, email, bson.M{"role": role, "updatedAt": time.Now()})
}

func (r *UserRepository) UpdateProfile(ctx context.Context, email string, profile domain.UserProfile, now time.Time) (domain.UpdateResult, error) {
	return r.update(ctx, email, profileSet(profile, now))
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) update(ctx context.Context, email string, set bson.M) (domain.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("failed to update user: %w", err)
	}

	return domain.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}
