package database

import (
	"Backend-Survey-Engine/src/logger"

	"github.com/hibiken/asynq"
)

var AsynqClient *asynq.Client

// InitAsynq initializes Asynq client only if Redis is available
func InitAsynq() {
	// RedisClient != nil means InitRedis was successful
	if RedisClient == nil || RedisURI == "" {
		logger.Warnf("⚠️ Redis not available. Asynq client will not be initialized.")
		return
	}

	AsynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: RedisURI})
	logger.Infof("✅ Asynq Client initialized successfully")
}
