package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketHistoryEntry is an append-only audit record of a ticket
// transition, stored in the document store keyed by ticket ID. Entries
// are never updated or deleted after creation.
type TicketHistoryEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	TicketID    string             `bson:"ticket_id"`
	FromStatus  TicketStatus       `bson:"from_status"`
	ToStatus    TicketStatus       `bson:"to_status"`
	Description string             `bson:"description"`
	ActorID     string             `bson:"actor_id"`
	ActorRole   Role               `bson:"actor_role"`
	CreatedAt   time.Time          `bson:"created_at"`
}
