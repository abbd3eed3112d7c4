package verification

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/AndyisCodingMate/housesync-product/internal/documents"
	"github.com/AndyisCodingMate/housesync-product/internal/queue"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/metrics"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/storage/object"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/telemetry"
)

// Processor runs tampering detection for queued uploads and records the
// verdict on the document row.
type Processor struct {
	Repo   documents.DocumentsRepo
	Store  object.ObjectStore
	Client *Client
}

// NewProcessor constructs a Processor.
func NewProcessor(repo documents.DocumentsRepo, store object.ObjectStore, client *Client) *Processor {
	return &Processor{Repo: repo, Store: store, Client: client}
}

// Process verifies one queued document. Unknown documents are treated as
// already deleted and skipped without error.
func (p *Processor) Process(ctx context.Context, msg queue.Message) error {
	doc, err := p.Repo.GetByID(ctx, msg.UserID, msg.DocumentID)
	if err != nil {
		if err == documents.ErrNotFound {
			telemetry.Info("verification.process.document_gone", map[string]any{
				"document_id": msg.DocumentID,
			})
			return nil
		}
		return fmt.Errorf("load document: %w", err)
	}
	if doc.VerificationStatus != documents.StatusPending {
		return nil
	}

	reader, err := p.Store.Open(ctx, doc.FilePath)
	if err != nil {
		return fmt.Errorf("open object: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("read object: %w", err)
	}

	metrics.IncVerificationStarted()
	start := time.Now()

	result, err := p.Client.Check(ctx, Request{
		DocType:   doc.FileType,
		DocBase64: base64.StdEncoding.EncodeToString(raw),
		ReqID:     msg.RequestID,
	}, "")
	metrics.ObserveVerificationDurationMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.IncVerificationFailed()
		return fmt.Errorf("vendor check: %w", err)
	}

	status := documents.StatusVerified
	if !result.Success || result.Tampered {
		status = documents.StatusRejected
	}
	if err := p.Repo.UpdateVerification(ctx, doc.ID, status, documents.VerifiedByServer); err != nil {
		return fmt.Errorf("record verdict: %w", err)
	}

	metrics.IncVerificationCompleted()
	telemetry.Info("verification.process.done", map[string]any{
		"document_id": doc.ID,
		"status":      status,
		"tampered":    result.Tampered,
		"severity":    result.Severity,
	})
	return nil
}
