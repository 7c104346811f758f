package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"docsafe/internal/config"
	"docsafe/internal/model"
	"docsafe/internal/repository"
)

var (
	ErrQueueFull    = errors.New("ocr queue is full")
	ErrShuttingDown = errors.New("ocr pool is shutting down")
)

// Job is one queued recognition request.
type Job struct {
	DocumentID string
	Attempt    int
}

// Pool runs recognition jobs on a bounded in-process queue. Jobs are retried
// up to MaxAttempts; a job that keeps failing ends with the document in
// status ocr_failed, which is the dead-letter outcome clients poll for.
type Pool struct {
	engine Engine
	docs   repository.DocumentRepository
	ocr    repository.OcrRepository

	queue       chan Job
	workerCount int
	maxAttempts int

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.RWMutex
	shuttingDown bool
}

// NewPool creates the pool and starts its workers.
func NewPool(cfg config.OCRConfig, engine Engine, docs repository.DocumentRepository, ocrRepo repository.OcrRepository) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 3
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		engine:      engine,
		docs:        docs,
		ocr:         ocrRepo,
		queue:       make(chan Job, queueSize),
		workerCount: workers,
		maxAttempts: maxAttempts,
		ctx:         ctx,
		cancel:      cancel,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

// Enqueue submits a document for recognition without blocking the caller.
func (p *Pool) Enqueue(documentID string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.shuttingDown {
		return ErrShuttingDown
	}

	select {
	case p.queue <- Job{DocumentID: documentID, Attempt: 1}:
		return nil
	default:
		return ErrQueueFull
	}
}

// QueueSize returns the number of jobs waiting to be processed.
func (p *Pool) QueueSize() int {
	return len(p.queue)
}

// Shutdown stops accepting jobs, cancels in-flight work and waits for workers.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.shuttingDown = true
	p.mu.Unlock()

	p.cancel()
	close(p.queue)
	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	p.logJSON(map[string]any{"event": "ocr_worker_started", "worker": id})

	for {
		select {
		case <-p.ctx.Done():
			p.logJSON(map[string]any{"event": "ocr_worker_stopped", "worker": id})
			return
		case job, ok := <-p.queue:
			if !ok {
				p.logJSON(map[string]any{"event": "ocr_worker_stopped", "worker": id})
				return
			}
			p.process(id, job)
		}
	}
}

// process runs one job and decides between completion, retry and dead-letter.
func (p *Pool) process(workerID int, job Job) {
	start := time.Now()
	err := p.runJob(job)
	if err == nil {
		p.logJSON(map[string]any{
			"event":       "ocr_completed",
			"worker":      workerID,
			"document_id": job.DocumentID,
			"attempt":     job.Attempt,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return
	}

	if job.Attempt < p.maxAttempts && p.tryRequeue(job) {
		p.logJSON(map[string]any{
			"event":         "ocr_retry",
			"worker":        workerID,
			"document_id":   job.DocumentID,
			"attempt":       job.Attempt,
			"error_message": err.Error(),
		})
		return
	}

	p.logJSON(map[string]any{
		"event":         "ocr_failed",
		"worker":        workerID,
		"document_id":   job.DocumentID,
		"attempt":       job.Attempt,
		"error_message": err.Error(),
	})
	if updErr := p.docs.UpdateStatus(p.ctx, job.DocumentID, model.StatusOCRFailed); updErr != nil {
		p.logJSON(map[string]any{
			"event":         "ocr_status_update_failed",
			"document_id":   job.DocumentID,
			"error_message": updErr.Error(),
		})
	}
}

// tryRequeue puts a failed job back on the queue without blocking. The lock
// excludes Shutdown closing the queue mid-send; a full queue or a shutdown in
// progress counts as a failed attempt and the job falls through to dead-letter.
func (p *Pool) tryRequeue(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.shuttingDown {
		return false
	}

	select {
	case p.queue <- Job{DocumentID: job.DocumentID, Attempt: job.Attempt + 1}:
		return true
	default:
		return false
	}
}

func (p *Pool) runJob(job Job) error {
	doc, err := p.docs.FindByID(p.ctx, job.DocumentID)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	result, err := p.engine.Recognize(p.ctx, doc)
	if err != nil {
		return fmt.Errorf("recognize: %w", err)
	}

	if err := p.ocr.SaveResult(p.ctx, result); err != nil {
		return fmt.Errorf("save result: %w", err)
	}

	if err := p.docs.UpdateStatus(p.ctx, job.DocumentID, model.StatusProcessed); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

func (p *Pool) logJSON(data map[string]any) {
	data["component"] = "ocr"
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal ocr log: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, string(b))
}
