package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpme/helpdesk/internal/domain"
)

// TicketHistoryRepository stores the append-only transition log in the
// document store. Entries are only ever inserted and read back ascending
// by timestamp.
type TicketHistoryRepository interface {
	Append(ctx context.Context, entry *domain.TicketHistoryEntry) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketHistoryEntry, error)
	Purge(ctx context.Context) (int64, error)
}

type ticketHistoryRepository struct {
	collection *mongo.Collection
}

// NewTicketHistoryRepository builds a Mongo-backed repository.
func NewTicketHistoryRepository(collection *mongo.Collection) TicketHistoryRepository {
	return &ticketHistoryRepository{collection: collection}
}

func (r *ticketHistoryRepository) Append(ctx context.Context, entry *domain.TicketHistoryEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid
	}
	return nil
}

func (r *ticketHistoryRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketHistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"ticket_id": ticketID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.TicketHistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Purge exists for the maintenance cleanup command only; the API never
// removes history.
func (r *ticketHistoryRepository) Purge(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
