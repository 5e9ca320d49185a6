package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"finance-core/internal/consumers"
	"finance-core/internal/services"
)

type Worker struct {
	Processor *consumers.BatchProcessor
}

func NewWorker(processor *consumers.BatchProcessor) *Worker {
	return &Worker{Processor: processor}
}

func (w *Worker) HandleBatchImport(ctx context.Context, t *asynq.Task) error {
	var p services.BatchImportPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	w.Processor.ProcessBatchImport(p)
	return nil
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.BatchProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()
	mux.HandleFunc(services.TypeBatchImport, worker.HandleBatchImport)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run worker server: %v", err)
	}
}
