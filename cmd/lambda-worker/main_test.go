package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"recruitedge-api/internal/queue"
)

type flakySink struct {
	failFor string
}

func (f flakySink) RecordEvent(ctx context.Context, evt queue.Event) error {
	_ = ctx
	if evt.InteractionID == f.failFor {
		return errors.New("db down")
	}
	return nil
}

func TestProcessBatchReportsOnlyRetryableFailures(t *testing.T) {
	ok, _ := queue.EncodeEvent(queue.Event{InteractionID: "int-1", UserID: "user-1"})
	failing, _ := queue.EncodeEvent(queue.Event{InteractionID: "int-2", UserID: "user-1"})
	event := events.SQSEvent{Records: []events.SQSMessage{
		{MessageId: "m1", Body: string(ok)},
		{MessageId: "m2", Body: string(failing)},
		{MessageId: "m3", Body: "{bad-json"},
	}}

	resp := processBatch(context.Background(), flakySink{failFor: "int-2"}, event)

	if len(resp.BatchItemFailures) != 1 || resp.BatchItemFailures[0].ItemIdentifier != "m2" {
		t.Fatalf("unexpected failures %+v", resp.BatchItemFailures)
	}
}
