package responses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Backend-Survey-Engine/src/models"
	"Backend-Survey-Engine/src/services/traversal"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type InviteStore struct {
	coll *mongo.Collection
}

func NewInviteStore(coll *mongo.Collection) *InviteStore {
	return &InviteStore{coll: coll}
}

func (st *InviteStore) FindByToken(ctx context.Context, token string) (*models.Invite, error) {
	var inv models.Invite
	if err := st.coll.FindOne(ctx, bson.M{"token": token}).Decode(&inv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("invite: %w", traversal.ErrNotFound)
		}
		return nil, fmt.Errorf("find invite: %w", err)
	}
	return &inv, nil
}

type PulseStore struct {
	coll *mongo.Collection
}

func NewPulseStore(coll *mongo.Collection) *PulseStore {
	return &PulseStore{coll: coll}
}

func (st *PulseStore) FindRoundResult(ctx context.Context, id primitive.ObjectID) (*models.PulseRoundResult, error) {
	var r models.PulseRoundResult
	if err := st.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("pulse round %s: %w", id.Hex(), traversal.ErrNotFound)
		}
		return nil, fmt.Errorf("find pulse round: %w", err)
	}
	return &r, nil
}

// MarkRoundCompleted flags the recipient's round result as completed. Already
// completed rounds are left untouched.
func (st *PulseStore) MarkRoundCompleted(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := st.coll.UpdateOne(ctx,
		bson.M{"_id": id, "completed": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"completed": true, "completedAt": at}},
	)
	if err != nil {
		return fmt.Errorf("mark pulse round completed: %w", err)
	}
	return nil
}
