package messages

import (
	"context"
	"fmt"
	"sync"

	"Backend-Survey-Engine/src/logger"
	"Backend-Survey-Engine/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Source yields the catalog entries of one language.
type Source interface {
	Messages(ctx context.Context, lang string) ([]models.Message, error)
}

// Catalog is an in-memory snapshot of localized message strings. Lookups never hit the
// store; Reload swaps the snapshot atomically.
type Catalog struct {
	src  Source
	lang string

	mu     sync.RWMutex
	values map[string]string
}

func NewCatalog(src Source, lang string) *Catalog {
	return &Catalog{src: src, lang: lang, values: map[string]string{}}
}

// Load fills the catalog for the first time.
func (c *Catalog) Load(ctx context.Context) error {
	return c.Reload(ctx)
}

// Reload replaces the snapshot. On error the previous snapshot stays in place.
func (c *Catalog) Reload(ctx context.Context) error {
	msgs, err := c.src.Messages(ctx, c.lang)
	if err != nil {
		return fmt.Errorf("load message catalog: %w", err)
	}
	values := make(map[string]string, len(msgs))
	for _, m := range msgs {
		values[m.Key] = m.Value
	}

	c.mu.Lock()
	c.values = values
	c.mu.Unlock()

	logger.Infof("✅ [Catalog] loaded %d messages (lang=%s)", len(values), c.lang)
	return nil
}

// Message returns the text for key, or the key itself when the catalog has no entry.
func (c *Catalog) Message(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.values[key]; ok && v != "" {
		return v
	}
	return key
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

// MongoSource reads the contents collection.
type MongoSource struct {
	coll *mongo.Collection
}

func NewMongoSource(coll *mongo.Collection) *MongoSource {
	return &MongoSource{coll: coll}
}

func (s *MongoSource) Messages(ctx context.Context, lang string) ([]models.Message, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"lang": lang})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Message
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
