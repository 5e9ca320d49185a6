package services

import (
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"finance-core/internal/models"
)

// TypeBatchImport is the asynq task type carrying a bulk submission to the
// worker process.
const TypeBatchImport = "batch:import"

// BatchImportPayload is the wire form of an asynchronous bulk submission.
type BatchImportPayload struct {
	Submitter string               `json:"submitter"`
	Records   []models.Transaction `json:"records"`
}

// ImportService enqueues bulk submissions for the background worker
// instead of processing them on the request path.
type ImportService struct {
	Client *asynq.Client
	Log    zerolog.Logger
}

func NewImportService(client *asynq.Client, log zerolog.Logger) *ImportService {
	return &ImportService{Client: client, Log: log}
}

// EnqueueBatchImport hands the records to the worker queue and returns the
// queued task id.
func (s *ImportService) EnqueueBatchImport(payload BatchImportPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	info, err := s.Client.Enqueue(asynq.NewTask(TypeBatchImport, data), asynq.Queue("default"))
	if err != nil {
		s.Log.Error().Err(err).Msg("failed to enqueue batch import")
		return "", err
	}

	s.Log.Info().
		Str("task_id", info.ID).
		Int("records", len(payload.Records)).
		Msg("batch import enqueued")
	return info.ID, nil
}
