package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"recruitedge-api/internal/bootstrap"
	"recruitedge-api/internal/queue"
	"recruitedge-api/internal/shared/config"
	"recruitedge-api/internal/shared/metrics"
	"recruitedge-api/internal/shared/telemetry"
	"recruitedge-api/internal/workerproc"
)

const (
	defaultVisibilitySeconds  = 60
	defaultWorkerConcurrency  = 4
	defaultShutdownTimeoutSec = 30
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	concurrency := envInt("WORKER_CONCURRENCY", defaultWorkerConcurrency)
	shutdownTimeout := time.Duration(envInt("SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSec)) * time.Second

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	switch cfg.EventQueue {
	case "sqs":
		runSQS(ctx, cfg, app.AuditLogs, concurrency, shutdownTimeout)
	case "amqp":
		consumer, ok := app.Queue.(*queue.AMQPClient)
		if !ok {
			log.Fatal("EVENT_QUEUE=amqp but no amqp client was built")
		}
		log.Printf("worker started queue=%s concurrency=%d", cfg.AMQPQueue, concurrency)
		if err := consumer.Consume(ctx, concurrency, shutdownTimeout, amqpHandler(app.AuditLogs)); err != nil {
			log.Fatalf("amqp consume: %v", err)
		}
	default:
		log.Fatal("EVENT_QUEUE must be sqs or amqp to run the worker")
	}
}

// amqpHandler acks unrecoverable payloads so the broker stops redelivering them.
func amqpHandler(sink workerproc.EventSink) queue.Handler {
	return func(ctx context.Context, body []byte) error {
		metrics.IncWorkerReceived()
		err := workerproc.HandleMessage(ctx, sink, string(body))
		switch {
		case err == nil:
			metrics.IncWorkerProcessed()
			return nil
		case workerproc.Unrecoverable(err):
			meta := workerproc.ComputeMeta(string(body))
			telemetry.Error("worker.event.discarded", map[string]any{
				"body_len":    meta.BodyLen,
				"body_sha256": meta.BodySHA,
				"error":       err.Error(),
			})
			metrics.IncWorkerDiscarded()
			return nil
		default:
			telemetry.Error("worker.event.failed", map[string]any{"error": err.Error()})
			metrics.IncWorkerFailed()
			return err
		}
	}
}

func runSQS(ctx context.Context, cfg config.Config, sink workerproc.EventSink, concurrency int, shutdownTimeout time.Duration) {
	queueURL := strings.TrimSpace(cfg.SQSQueueURL)
	if queueURL == "" {
		log.Fatal("SQS_QUEUE_URL is required")
	}
	visibilitySeconds := envInt("SQS_VISIBILITY_TIMEOUT_SECONDS", defaultVisibilitySeconds)

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}
	log.Printf("worker started queue=%s concurrency=%d visibility=%ds", queueURL, concurrency, visibilitySeconds)
	pollSQS(ctx, sqs.NewFromConfig(awsCfg), queueURL, int32(visibilitySeconds), sink, concurrency, shutdownTimeout)
}

// pollSQS long-polls until ctx is cancelled. Messages already received are
// processed on a drain context and get up to shutdownTimeout to finish.
func pollSQS(ctx context.Context, client sqsAPI, queueURL string, visibilitySeconds int32, sink workerproc.EventSink, concurrency int, shutdownTimeout time.Duration) {
	sem := make(chan struct{}, max(1, concurrency))
	drain := queue.NewDrain(ctx)

pollLoop:
	for {
		select {
		case <-ctx.Done():
			break pollLoop
		default:
		}

		resp, err := client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
			VisibilityTimeout:   visibilitySeconds,
			AttributeNames:      []sqstypes.QueueAttributeName{sqstypes.QueueAttributeName("ApproximateReceiveCount")},
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				break pollLoop
			}
			log.Printf("receive message: %v", err)
			continue
		}

		for _, msg := range resp.Messages {
			select {
			case <-ctx.Done():
				break pollLoop
			case sem <- struct{}{}:
			}
			metrics.IncWorkerReceived()
			drain.Go(func(hctx context.Context) {
				defer func() { <-sem }()
				handleMessage(hctx, client, queueURL, sink, msg)
			})
		}
	}

	log.Printf("shutdown requested, waiting up to %s for in-flight events", shutdownTimeout)
	if !drain.Wait(shutdownTimeout) {
		log.Printf("shutdown timeout reached; exiting with in-flight events")
	}
}

type sqsAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

func handleMessage(ctx context.Context, client sqsAPI, queueURL string, sink workerproc.EventSink, msg sqstypes.Message) {
	body := aws.ToString(msg.Body)

	decoded, meta, err := workerproc.ParseMessage(body)
	if err != nil {
		fields := baseFields(msg, decoded.InteractionID, decoded.RequestID)
		fields["body_len"] = meta.BodyLen
		if meta.BodySHA != "" {
			fields["body_sha256"] = meta.BodySHA
		}
		fields["error"] = err.Error()
		telemetry.Error("worker.event.invalid", fields)
		if deleteMessage(ctx, client, queueURL, msg, decoded.InteractionID, decoded.RequestID) {
			metrics.IncWorkerDiscarded()
		}
		return
	}

	telemetry.Info("worker.event.received", baseFields(msg, decoded.InteractionID, decoded.RequestID))

	ctxWithParsed := workerproc.WithParsedMessage(ctx, decoded)
	if err := workerproc.HandleMessage(ctxWithParsed, sink, body); err != nil {
		fields := baseFields(msg, decoded.InteractionID, decoded.RequestID)
		fields["error"] = err.Error()
		telemetry.Error("worker.event.failed", fields)
		metrics.IncWorkerFailed()
		return
	}

	if deleteMessage(ctx, client, queueURL, msg, decoded.InteractionID, decoded.RequestID) {
		telemetry.Info("worker.event.recorded", baseFields(msg, decoded.InteractionID, decoded.RequestID))
		metrics.IncWorkerProcessed()
	}
}

func deleteMessage(ctx context.Context, client sqsAPI, queueURL string, msg sqstypes.Message, interactionID, requestID string) bool {
	receipt := aws.ToString(msg.ReceiptHandle)
	if receipt == "" {
		fields := baseFields(msg, interactionID, requestID)
		fields["error"] = "missing receipt handle"
		telemetry.Error("worker.event.delete_failed", fields)
		return false
	}
	if _, err := client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: aws.String(receipt),
	}); err != nil {
		fields := baseFields(msg, interactionID, requestID)
		fields["error"] = err.Error()
		telemetry.Error("worker.event.delete_failed", fields)
		return false
	}
	return true
}

func baseFields(msg sqstypes.Message, interactionID, requestID string) map[string]any {
	fields := map[string]any{
		"interaction_id": interactionID,
		"sqs_message_id": aws.ToString(msg.MessageId),
		"receive_count":  receiveCount(msg),
	}
	if strings.TrimSpace(requestID) != "" {
		fields["request_id"] = requestID
	}
	return fields
}

func receiveCount(msg sqstypes.Message) int {
	if msg.Attributes == nil {
		return 0
	}
	raw := msg.Attributes["ApproximateReceiveCount"]
	if raw == "" {
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return parsed
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
