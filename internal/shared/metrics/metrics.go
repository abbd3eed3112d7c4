package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	uploadStartedTotal    atomic.Uint64
	uploadCompletedTotal  atomic.Uint64
	uploadRejectedTotal   atomic.Uint64
	uploadRolledBackTotal atomic.Uint64

	verificationStartedTotal   atomic.Uint64
	verificationCompletedTotal atomic.Uint64
	verificationFailedTotal    atomic.Uint64

	reclaimFailedTotal atomic.Uint64

	uploadDuration       = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000})
	verificationDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncUploadStarted increments the upload started counter.
func IncUploadStarted() {
	uploadStartedTotal.Add(1)
}

// IncUploadCompleted increments the upload completed counter.
func IncUploadCompleted() {
	uploadCompletedTotal.Add(1)
}

// IncUploadRejected increments the counter for uploads refused by validation.
func IncUploadRejected() {
	uploadRejectedTotal.Add(1)
}

// IncUploadRolledBack increments the counter for uploads whose stored object
// was removed after the database insert failed.
func IncUploadRolledBack() {
	uploadRolledBackTotal.Add(1)
}

// IncVerificationStarted increments the verification started counter.
func IncVerificationStarted() {
	verificationStartedTotal.Add(1)
}

// IncVerificationCompleted increments the verification completed counter.
func IncVerificationCompleted() {
	verificationCompletedTotal.Add(1)
}

// IncVerificationFailed increments the verification failed counter.
func IncVerificationFailed() {
	verificationFailedTotal.Add(1)
}

// IncReclaimFailed increments the counter for reclaim jobs that exhausted retries.
func IncReclaimFailed() {
	reclaimFailedTotal.Add(1)
}

// ObserveUploadDurationMs records an upload duration in milliseconds.
func ObserveUploadDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	uploadDuration.Observe(value)
}

// ObserveVerificationDurationMs records a verification duration in milliseconds.
func ObserveVerificationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	verificationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "upload_started_total", "Total document uploads started", uploadStartedTotal.Load())
	writeCounter(&buf, "upload_completed_total", "Total document uploads completed", uploadCompletedTotal.Load())
	writeCounter(&buf, "upload_rejected_total", "Total document uploads rejected by validation", uploadRejectedTotal.Load())
	writeCounter(&buf, "upload_rolled_back_total", "Total document uploads rolled back after insert failure", uploadRolledBackTotal.Load())
	writeCounter(&buf, "verification_started_total", "Total document verifications started", verificationStartedTotal.Load())
	writeCounter(&buf, "verification_completed_total", "Total document verifications completed", verificationCompletedTotal.Load())
	writeCounter(&buf, "verification_failed_total", "Total document verifications failed", verificationFailedTotal.Load())
	writeCounter(&buf, "reclaim_failed_total", "Total profile picture reclaim jobs that exhausted retries", reclaimFailedTotal.Load())
	writeHistogram(&buf, "upload_duration_ms", "Upload duration in milliseconds", uploadDuration.Snapshot())
	writeHistogram(&buf, "verification_duration_ms", "Verification duration in milliseconds", verificationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
