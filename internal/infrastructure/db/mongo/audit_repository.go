package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aprovame/integrations-api/internal/core/domain"
	"github.com/aprovame/integrations-api/internal/core/ports"
)

const collectionAudit = "audit_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

// Insert appends an entry to the audit_events collection.
func (r *AuditRepository) Insert(ctx context.Context, e *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"entity":      e.Entity,
		"action":      e.Action,
		"actor":       e.Actor,
		"success":     e.Success,
		"at":          e.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if e.EntityID != "" {
		doc["entity_id"] = e.EntityID
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
