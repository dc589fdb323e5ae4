package responses

import (
	"context"
	"errors"
	"fmt"

	"Backend-Survey-Engine/src/models"
	"Backend-Survey-Engine/src/services/traversal"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SessionStore keeps response sessions in MongoDB. Writes are guarded by the
// document's version field so two requests cannot both advance the same state.
type SessionStore struct {
	coll *mongo.Collection
}

func NewSessionStore(coll *mongo.Collection) *SessionStore {
	return &SessionStore{coll: coll}
}

func (st *SessionStore) FindByToken(ctx context.Context, token string) (*models.ResponseSession, error) {
	return st.findOne(ctx, bson.M{"token": token})
}

func (st *SessionStore) FindByFingerprint(ctx context.Context, fingerprintID string, surveyID primitive.ObjectID) (*models.ResponseSession, error) {
	return st.findOne(ctx, bson.M{"fingerprintId": fingerprintID, "survey": surveyID})
}

func (st *SessionStore) findOne(ctx context.Context, filter bson.M) (*models.ResponseSession, error) {
	var s models.ResponseSession
	err := st.coll.FindOne(ctx, filter).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("response session: %w", traversal.ErrNotFound)
		}
		return nil, fmt.Errorf("find response session: %w", err)
	}
	if s.Answer.Items == nil {
		s.Answer.Items = map[string]models.ItemAnswer{}
	}
	return &s, nil
}

// Save replaces the session only if its stored version still equals s.Version.
// Sessions created before versioning carry no version field and match version 0.
func (st *SessionStore) Save(ctx context.Context, s *models.ResponseSession) error {
	filter := bson.M{"_id": s.ID, "version": s.Version}
	if s.Version == 0 {
		filter = bson.M{"_id": s.ID, "$or": bson.A{
			bson.M{"version": 0},
			bson.M{"version": bson.M{"$exists": false}},
		}}
	}

	next := *s
	next.Version = s.Version + 1
	res, err := st.coll.ReplaceOne(ctx, filter, &next)
	if err != nil {
		return fmt.Errorf("save response session %s: %w", s.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return traversal.ErrVersionConflict
	}
	s.Version = next.Version
	return nil
}
