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

const collectionPayables = "payables"

type PayableRepository struct {
	col *mongo.Collection
}

func NewPayableRepository(db *mongo.Database) *PayableRepository {
	return &PayableRepository{col: db.Collection(collectionPayables)}
}

func (r *PayableRepository) Create(ctx context.Context, p *domain.Payable) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrPayableExists
		}
		return fmt.Errorf("insert payable: %w", err)
	}
	return nil
}

func (r *PayableRepository) FindByID(ctx context.Context, id string) (*domain.Payable, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Payable
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPayableNotFound
		}
		return nil, fmt.Errorf("find payable: %w", err)
	}
	p.EmissionDate = p.EmissionDate.UTC()
	return &p, nil
}

func (r *PayableRepository) List(ctx context.Context) ([]*domain.Payable, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "emission_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list payables: %w", err)
	}
	list := make([]*domain.Payable, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("decode payables: %w", err)
	}
	for _, p := range list {
		p.EmissionDate = p.EmissionDate.UTC()
	}
	return list, nil
}

func (r *PayableRepository) Update(ctx context.Context, id string, patch domain.PayablePatch) (*domain.Payable, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := payableSet(patch)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p domain.Payable
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPayableNotFound
		}
		return nil, fmt.Errorf("update payable: %w", err)
	}
	p.EmissionDate = p.EmissionDate.UTC()
	return &p, nil
}

func (r *PayableRepository) Delete(ctx context.Context, id string) (*domain.Payable, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Payable
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPayableNotFound
		}
		return nil, fmt.Errorf("delete payable: %w", err)
	}
	p.EmissionDate = p.EmissionDate.UTC()
	return &p, nil
}

// CountByAssignor returns how many payables reference assignorID.
func (r *PayableRepository) CountByAssignor(ctx context.Context, assignorID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"assignor_id": assignorID})
	if err != nil {
		return 0, fmt.Errorf("count payables: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates necessary indexes on the payables collection.
func (r *PayableRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "assignor_id", Value: 1}}},
		{Keys: bson.D{{Key: "emission_date", Value: -1}}},
	})
	return err
}

// payableSet stores emission dates in UTC.
func payableSet(patch domain.PayablePatch) bson.M {
	set := bson.M{}
	if patch.Value != nil {
		set["value"] = *patch.Value
	}
	if patch.EmissionDate != nil {
		set["emission_date"] = patch.EmissionDate.UTC()
	}
	if patch.AssignorID != nil {
		set["assignor_id"] = *patch.AssignorID
	}
	return set
}
