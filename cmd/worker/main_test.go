package main

import (
	"context"
	"errors"
	"testing"

	"github.com/AndyisCodingMate/housesync-product/internal/queue"
)

type fakeQueue struct {
	deleted []string
}

func (f *fakeQueue) Delete(ctx context.Context, receiptHandle string) error {
	_ = ctx
	f.deleted = append(f.deleted, receiptHandle)
	return nil
}

type fakeProcessor struct {
	err error
	got []queue.Message
}

func (f *fakeProcessor) Process(ctx context.Context, msg queue.Message) error {
	_ = ctx
	f.got = append(f.got, msg)
	return f.err
}

func TestWorkerDeletesMessageOnSuccess(t *testing.T) {
	q := &fakeQueue{}
	proc := &fakeProcessor{}
	body, _ := queue.EncodeMessage(queue.Message{DocumentID: "doc-1", UserID: "u1", RequestID: "req-1"})
	msg := queue.ReceivedMessage{Body: string(body), ReceiptHandle: "r1"}

	handleMessage(context.Background(), q, proc, msg)

	if len(q.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(q.deleted))
	}
	if len(proc.got) != 1 || proc.got[0].DocumentID != "doc-1" {
		t.Fatalf("processed = %+v", proc.got)
	}
}

func TestWorkerDoesNotDeleteOnFailure(t *testing.T) {
	q := &fakeQueue{}
	proc := &fakeProcessor{err: errors.New("boom")}
	body, _ := queue.EncodeMessage(queue.Message{DocumentID: "doc-2", RequestID: "req-2"})
	msg := queue.ReceivedMessage{Body: string(body), ReceiptHandle: "r2"}

	handleMessage(context.Background(), q, proc, msg)

	if len(q.deleted) != 0 {
		t.Fatalf("expected no delete, got %d", len(q.deleted))
	}
}

func TestWorkerDeletesOnInvalidJSON(t *testing.T) {
	q := &fakeQueue{}
	proc := &fakeProcessor{}
	msg := queue.ReceivedMessage{Body: "{bad-json", ReceiptHandle: "r3"}

	handleMessage(context.Background(), q, proc, msg)

	if len(q.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(q.deleted))
	}
	if len(proc.got) != 0 {
		t.Fatalf("processor should not run on bad payload")
	}
}

func TestWorkerDeletesOnMissingDocumentID(t *testing.T) {
	q := &fakeQueue{}
	proc := &fakeProcessor{}
	body, _ := queue.EncodeMessage(queue.Message{RequestID: "req-4"})
	msg := queue.ReceivedMessage{Body: string(body), ReceiptHandle: "r4"}

	handleMessage(context.Background(), q, proc, msg)

	if len(q.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(q.deleted))
	}
}
