package profilepictures

import (
	"context"
	"sync"
	"time"

	"github.com/AndyisCodingMate/housesync-product/internal/shared/metrics"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/storage/object"
	"github.com/AndyisCodingMate/housesync-product/internal/shared/telemetry"
)

const (
	reclaimQueueSize  = 64
	reclaimAttempts   = 3
	reclaimRetryDelay = 200 * time.Millisecond
	reclaimJobTimeout = 30 * time.Second
)

type reclaimJob struct {
	userID string
	keepID string
}

// Reclaimer deactivates and deletes superseded profile-picture rows and
// objects in the background. Uploads hand it a job and return immediately;
// errors are logged and retried a bounded number of times, never surfaced.
// A periodic sweep picks up inactive rows left behind by earlier failures.
type Reclaimer struct {
	repo  Repo
	store object.ObjectStore

	jobs chan reclaimJob
	quit chan struct{}
	wg   sync.WaitGroup

	mu        sync.Mutex
	seenUsers map[string]struct{}
}

// NewReclaimer starts the background worker. sweepEvery <= 0 disables the
// periodic sweep.
func NewReclaimer(repo Repo, store object.ObjectStore, sweepEvery time.Duration) *Reclaimer {
	r := &Reclaimer{
		repo:      repo,
		store:     store,
		jobs:      make(chan reclaimJob, reclaimQueueSize),
		quit:      make(chan struct{}),
		seenUsers: make(map[string]struct{}),
	}
	r.wg.Add(1)
	go r.run(sweepEvery)
	return r
}

// Enqueue schedules cleanup of every active row for userID except keepID.
// It never blocks the caller: if the queue is full the job is dropped and
// left to the periodic sweep.
func (r *Reclaimer) Enqueue(userID, keepID string) {
	r.rememberUser(userID)
	select {
	case r.jobs <- reclaimJob{userID: userID, keepID: keepID}:
	default:
		telemetry.Error("profilepictures.reclaim.queue_full", map[string]any{
			"user_id": userID,
		})
	}
}

// Close drains the worker and stops it. Pending jobs are abandoned to the
// next process's sweep.
func (r *Reclaimer) Close() {
	close(r.quit)
	r.wg.Wait()
}

func (r *Reclaimer) run(sweepEvery time.Duration) {
	defer r.wg.Done()

	var sweep <-chan time.Time
	if sweepEvery > 0 {
		ticker := time.NewTicker(sweepEvery)
		defer ticker.Stop()
		sweep = ticker.C
	}

	for {
		select {
		case job := <-r.jobs:
			r.process(job)
		case <-sweep:
			r.sweepKnownUsers()
		case <-r.quit:
			return
		}
	}
}

func (r *Reclaimer) process(job reclaimJob) {
	var lastErr error
	for attempt := 1; attempt <= reclaimAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), reclaimJobTimeout)
		lastErr = r.reclaim(ctx, job)
		cancel()
		if lastErr == nil {
			return
		}
		time.Sleep(time.Duration(attempt) * reclaimRetryDelay)
	}
	metrics.IncReclaimFailed()
	telemetry.Error("profilepictures.reclaim.failed", map[string]any{
		"user_id": job.userID,
		"keep_id": job.keepID,
		"error":   lastErr.Error(),
	})
}

// reclaim deactivates stale rows before touching their objects so a reader
// querying active pictures never sees a row whose object is already gone.
// A crash between the two steps leaves an inactive row with a live object,
// which the sweep reclaims later.
func (r *Reclaimer) reclaim(ctx context.Context, job reclaimJob) error {
	stale, err := r.repo.ListActiveExcept(ctx, job.userID, job.keepID)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	ids := make([]string, 0, len(stale))
	for _, pic := range stale {
		ids = append(ids, pic.ID)
	}
	if err := r.repo.Deactivate(ctx, ids); err != nil {
		return err
	}

	for _, pic := range stale {
		if err := r.store.Delete(ctx, pic.FilePath); err != nil {
			// Object delete is idempotent; racing reclaimers are fine.
			telemetry.Error("profilepictures.reclaim.object_delete_failed", map[string]any{
				"user_id": job.userID,
				"path":    pic.FilePath,
				"error":   err.Error(),
			})
		}
	}

	return r.repo.DeleteRows(ctx, ids)
}

func (r *Reclaimer) rememberUser(userID string) {
	r.mu.Lock()
	r.seenUsers[userID] = struct{}{}
	r.mu.Unlock()
}

func (r *Reclaimer) sweepKnownUsers() {
	r.mu.Lock()
	users := make([]string, 0, len(r.seenUsers))
	for userID := range r.seenUsers {
		users = append(users, userID)
	}
	r.mu.Unlock()

	for _, userID := range users {
		ctx, cancel := context.WithTimeout(context.Background(), reclaimJobTimeout)
		if err := sweepInactive(ctx, r.repo, r.store, userID); err != nil {
			telemetry.Error("profilepictures.sweep.failed", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		cancel()
	}
}

// sweepInactive deletes rows already marked inactive, then their objects.
// Shared by the periodic sweep and the manually invoked cleanup endpoint.
func sweepInactive(ctx context.Context, repo Repo, store object.ObjectStore, userID string) error {
	stale, err := repo.ListInactive(ctx, userID)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	ids := make([]string, 0, len(stale))
	for _, pic := range stale {
		ids = append(ids, pic.ID)
	}
	if err := repo.DeleteRows(ctx, ids); err != nil {
		return err
	}

	for _, pic := range stale {
		if err := store.Delete(ctx, pic.FilePath); err != nil {
			telemetry.Error("profilepictures.sweep.object_delete_failed", map[string]any{
				"user_id": userID,
				"path":    pic.FilePath,
				"error":   err.Error(),
			})
		}
	}
	return nil
}
