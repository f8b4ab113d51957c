package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

const collectionAssignors = "assignors"

type AssignorRepository struct {
	col *mongo.Collection
}

func NewAssignorRepository(db *mongo.Database) *AssignorRepository {
	return &AssignorRepository{col: db.Collection(collectionAssignors)}
}

// Create inserts a new assignor under its caller-supplied id.
func (r *AssignorRepository) Create(ctx context.Context, a *domain.Assignor) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAssignorExists
		}
		return fmt.Errorf("insert assignor: %w", err)
	}
	return nil
}

func (r *AssignorRepository) FindByID(ctx context.Context, id string) (*domain.Assignor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Assignor
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssignorNotFound
		}
		return nil, fmt.Errorf("find assignor: %w", err)
	}
	return &a, nil
}

func (r *AssignorRepository) List(ctx context.Context) ([]*domain.Assignor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list assignors: %w", err)
	}
	list := make([]*domain.Assignor, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("decode assignors: %w", err)
	}
	return list, nil
}

func (r *AssignorRepository) Update(ctx context.Context, id string, patch domain.AssignorPatch) (*domain.Assignor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := assignorSet(patch)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a domain.Assignor
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssignorNotFound
		}
		return nil, fmt.Errorf("update assignor: %w", err)
	}
	return &a, nil
}

// Delete removes the assignor and returns the document as it was.
func (r *AssignorRepository) Delete(ctx context.Context, id string) (*domain.Assignor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Assignor
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssignorNotFound
		}
		return nil, fmt.Errorf("delete assignor: %w", err)
	}
	return &a, nil
}

// EnsureIndexes creates necessary indexes on the assignors collection.
func (r *AssignorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "document", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	return err
}

func assignorSet(patch domain.AssignorPatch) bson.M {
	set := bson.M{}
	if patch.Document != nil {
		set["document"] = *patch.Document
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	return set
}
