package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookmanager/catalog-api/internal/core/domain"
)

const auditCollection = "auth_events"

// AuditRepository appends authentication audit events to the auth_events
// collection. Writes are append-only; nothing in the serving path reads them.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Username  string             `bson:"username"`
	Action    string             `bson:"action"`
	Outcome   string             `bson:"outcome"`
	Timestamp primitive.DateTime `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	doc := auditDoc{
		Username:  event.Username,
		Action:    event.Action,
		Outcome:   event.Outcome,
		Timestamp: primitive.NewDateTimeFromTime(event.Timestamp),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
