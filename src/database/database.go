package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Backend-Survey-Engine/src/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client     *mongo.Client
	once       sync.Once // ✅ ConnectMongoDB runs once
	connectErr error

	SurveyCollection          *mongo.Collection
	SectionCollection         *mongo.Collection
	SurveyItemCollection      *mongo.Collection
	QuestionCollection        *mongo.Collection
	EndPageCollection         *mongo.Collection
	ResponseSessionCollection *mongo.Collection
	InviteCollection          *mongo.Collection
	PulseRoundCollection      *mongo.Collection
	MessageCollection         *mongo.Collection
)

// ConnectMongoDB connects once and binds the named collections of dbName.
func ConnectMongoDB(mongoURI, dbName string) error {
	if mongoURI == "" {
		return fmt.Errorf("MONGO_URI environment variable not set")
	}

	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, connectErr = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if connectErr != nil {
			connectErr = fmt.Errorf("connect mongodb: %w", connectErr)
			return
		}

		if connectErr = client.Ping(ctx, readpref.Primary()); connectErr != nil {
			connectErr = fmt.Errorf("ping mongodb: %w", connectErr)
			return
		}

		bindCollections(client.Database(dbName))
		logger.Infof("✅ MongoDB connected successfully (db=%s)", dbName)
	})

	return connectErr
}

func bindCollections(db *mongo.Database) {
	SurveyCollection = db.Collection("surveys")
	SectionCollection = db.Collection("surveySections")
	SurveyItemCollection = db.Collection("surveyItems")
	QuestionCollection = db.Collection("questions")
	EndPageCollection = db.Collection("surveyEndPages")
	ResponseSessionCollection = db.Collection("surveyResults")
	InviteCollection = db.Collection("invites")
	PulseRoundCollection = db.Collection("pulseSurveyRoundResults")
	MessageCollection = db.Collection("contents")
}

// EnsureIndexes creates the lookup indexes the response path relies on.
func EnsureIndexes(ctx context.Context) error {
	_, err := ResponseSessionCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{"token": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "fingerprintId", Value: 1}, {Key: "survey", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create response session indexes: %w", err)
	}

	_, err = InviteCollection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "token", Value: 1}}})
	if err != nil {
		return fmt.Errorf("create invite index: %w", err)
	}
	return nil
}

// Disconnect closes the shared client.
func Disconnect(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.Errorf("❌ MongoDB disconnect failed: %v", err)
	}
}
