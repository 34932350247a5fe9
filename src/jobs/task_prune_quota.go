package jobs

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"Backend-Formgenie-007/src/database"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
)

// HandlePruneQuotaTask removes quota counter documents that have not been
// touched for a while. Correctness never depends on this — a stale counter
// resets lazily on the next generate — it just keeps the collection small.
func HandlePruneQuotaTask(ctx context.Context, t *asynq.Task) error {
	var payload PruneQuotaPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}
	if payload.KeepDays <= 0 {
		payload.KeepDays = 7
	}

	cutoff := time.Now().AddDate(0, 0, -payload.KeepDays).Format("2006-01-02")
	collection := database.GetCollection(database.DBName, "quotas")

	result, err := collection.DeleteMany(ctx, bson.M{"date": bson.M{"$lt": cutoff}})
	if err != nil {
		log.Println("❌ Failed to prune quota counters:", err)
		return err
	}

	log.Printf("✅ Pruned %d stale quota counters (older than %s)", result.DeletedCount, cutoff)
	return nil
}
