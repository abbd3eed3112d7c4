package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/AndyisCodingMate/housesync-product/internal/bootstrap"
	"github.com/AndyisCodingMate/housesync-product/internal/queue"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/config"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/telemetry"
	"github.com/AndyisCodingMate/housesync-product/internal/workerproc"
)

const (
	defaultWorkerConcurrency  = 4
	defaultShutdownTimeoutSec = 30
	receiveBatchSize          = 10
	receiveWaitSeconds        = 20
)

func main() {
	cfg := config.Load()
	telemetry.Init(cfg.Env)
	defer telemetry.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	concurrency := envInt("HS_WORKER_CONCURRENCY", defaultWorkerConcurrency)
	shutdownTimeout := time.Duration(envInt("HS_SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSec)) * time.Second

	sqsClient, err := queue.NewSQSClient(ctx)
	if err != nil {
		log.Fatalf("sqs client: %v", err)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	proc := app.VerificationProcessor

	sem := make(chan struct{}, max(1, concurrency))
	var wg sync.WaitGroup

	log.Printf("worker started concurrency=%d", concurrency)

pollLoop:
	for {
		select {
		case <-ctx.Done():
			break pollLoop
		default:
		}

		messages, err := sqsClient.Receive(ctx, receiveBatchSize, receiveWaitSeconds)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				break pollLoop
			}
			log.Printf("receive message: %v", err)
			continue
		}

		for _, msg := range messages {
			select {
			case <-ctx.Done():
				break pollLoop
			case sem <- struct{}{}:
			}
			wg.Add(1)
			go func(m queue.ReceivedMessage) {
				defer wg.Done()
				defer func() { <-sem }()
				handleMessage(ctx, sqsClient, proc, m)
			}(msg)
		}
	}

	log.Printf("shutdown requested, waiting up to %s for in-flight jobs", shutdownTimeout)
	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(shutdownTimeout):
		log.Printf("shutdown timeout reached; exiting with in-flight jobs")
	}
}

type queueAPI interface {
	Delete(ctx context.Context, receiptHandle string) error
}

func handleMessage(ctx context.Context, q queueAPI, proc workerproc.DocumentProcessor, msg queue.ReceivedMessage) {
	err := workerproc.HandleMessage(ctx, proc, msg.Body)
	if err == nil {
		if deleteMessage(ctx, q, msg, "", "") {
			telemetry.Info("worker.verification.completed", map[string]any{
				"body_len": len(msg.Body),
			})
		}
		return
	}

	// Unparseable messages can never succeed on redelivery.
	switch e := err.(type) {
	case workerproc.ErrEmptyBody:
		telemetry.Error("worker.verification.empty_body", map[string]any{
			"body_len": e.Meta.BodyLen,
		})
		deleteMessage(ctx, q, msg, "", "")
	case workerproc.ErrDecode:
		fields := map[string]any{
			"body_len":    e.Meta.BodyLen,
			"body_sha256": e.Meta.BodySHA,
		}
		if e.Err != nil {
			fields["error"] = e.Err.Error()
		}
		telemetry.Error("worker.verification.decode_failed", fields)
		deleteMessage(ctx, q, msg, "", "")
	case workerproc.ErrMissingDocumentID:
		telemetry.Error("worker.verification.missing_id", map[string]any{
			"body_len":    e.Meta.BodyLen,
			"body_sha256": e.Meta.BodySHA,
			"request_id":  e.RequestID,
		})
		deleteMessage(ctx, q, msg, "", e.RequestID)
	case workerproc.ErrProcess:
		fields := map[string]any{
			"document_id": e.DocumentID,
		}
		if strings.TrimSpace(e.RequestID) != "" {
			fields["request_id"] = e.RequestID
		}
		if e.Err != nil {
			fields["error"] = e.Err.Error()
		}
		telemetry.Error("worker.verification.failed", fields)
	default:
		telemetry.Error("worker.verification.failed", map[string]any{
			"error": err.Error(),
		})
	}
}

func deleteMessage(ctx context.Context, q queueAPI, msg queue.ReceivedMessage, documentID, requestID string) bool {
	if msg.ReceiptHandle == "" {
		telemetry.Error("worker.verification.delete_failed", map[string]any{
			"document_id": documentID,
			"request_id":  requestID,
			"error":       "missing receipt handle",
		})
		return false
	}
	if err := q.Delete(ctx, msg.ReceiptHandle); err != nil {
		telemetry.Error("worker.verification.delete_failed", map[string]any{
			"document_id": documentID,
			"request_id":  requestID,
			"error":       err.Error(),
		})
		return false
	}
	return true
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

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
