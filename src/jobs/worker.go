package jobs

import (
	"log"

	"Backend-Formgenie-007/src/database"

	"github.com/hibiken/asynq"
)

// StartWorker runs the asynq server and the periodic scheduler in the
// background. Skipped entirely when Redis is not configured.
func StartWorker() {
	if database.RedisURI == "" || database.RedisClient == nil {
		log.Println("⚠️ Redis not available → background jobs disabled")
		return
	}

	redisOpt := asynq.RedisClientOpt{Addr: database.RedisURI}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePruneQuota, HandlePruneQuotaTask)

	server := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 2})
	go func() {
		if err := server.Run(mux); err != nil {
			log.Println("❌ Asynq server stopped:", err)
		}
	}()

	scheduler := asynq.NewScheduler(redisOpt, nil)
	task, err := NewPruneQuotaTask(7)
	if err != nil {
		log.Println("❌ Failed to build prune task:", err)
		return
	}
	// ตี 3 ของทุกวัน
	if _, err := scheduler.Register("0 3 * * *", task); err != nil {
		log.Println("❌ Failed to schedule prune task:", err)
		return
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Println("❌ Asynq scheduler stopped:", err)
		}
	}()

	log.Println("✅ Background worker started")
}
