package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=amd64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker

import (
	"context"
	"log"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"recruitedge-api/internal/bootstrap"
	"recruitedge-api/internal/shared/config"
	"recruitedge-api/internal/shared/metrics"
	"recruitedge-api/internal/shared/telemetry"
	"recruitedge-api/internal/workerproc"
)

var (
	initOnce sync.Once
	initErr  error
	sink     workerproc.EventSink
)

func initApp() {
	cfg := config.Load()
	built, err := bootstrap.Build(cfg)
	if err != nil {
		initErr = err
		return
	}
	sink = built.AuditLogs
}

func handler(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		log.Printf("bootstrap error: %v", initErr)
		failures := make([]events.SQSBatchItemFailure, 0, len(event.Records))
		for _, record := range event.Records {
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
		return events.SQSEventResponse{BatchItemFailures: failures}, initErr
	}
	return processBatch(ctx, sink, event), nil
}

// processBatch reports only retryable failures; malformed payloads are dropped.
func processBatch(ctx context.Context, sink workerproc.EventSink, event events.SQSEvent) events.SQSEventResponse {
	failures := make([]events.SQSBatchItemFailure, 0)
	for _, record := range event.Records {
		metrics.IncWorkerReceived()
		err := workerproc.HandleMessage(ctx, sink, record.Body)
		switch {
		case err == nil:
			metrics.IncWorkerProcessed()
		case workerproc.Unrecoverable(err):
			telemetry.Error("worker.event.discarded", map[string]any{"sqs_message_id": record.MessageId, "error": err.Error()})
			metrics.IncWorkerDiscarded()
		default:
			telemetry.Error("worker.event.failed", map[string]any{"sqs_message_id": record.MessageId, "error": err.Error()})
			metrics.IncWorkerFailed()
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
	}
	return events.SQSEventResponse{BatchItemFailures: failures}
}

func main() {
	lambda.Start(handler)
}
