package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rkoval/specsect/internal/chunker"
	"github.com/rkoval/specsect/internal/config"
	"github.com/rkoval/specsect/internal/sectiontree"
	"github.com/rkoval/specsect/internal/store"
)

// Orchestrator manages the document ingestion pipeline.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	db       *store.Store
	log      *slog.Logger
	cfg      config.Config
	treeOpts sectiontree.Options
	chunkCfg chunker.Config
	mode     chunker.Mode

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline without starting workers.
func NewOrchestrator(cfg config.Config, db *store.Store, log *slog.Logger) *Orchestrator {
	treeOpts := sectiontree.DefaultOptions()
	treeOpts.MaxHeadingLevel = cfg.MaxHeadingLevel
	treeOpts.RequireNumbered = cfg.RequireNumbered
	treeOpts.CoalesceLimit = cfg.CoalesceLimit
	treeOpts.KeepPreamble = cfg.KeepPreamble
	if len(cfg.ExcludedSections) > 0 {
		treeOpts.ExcludedKeywords = cfg.ExcludedSections
	}

	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		db:       db,
		log:      log,
		cfg:      cfg,
		treeOpts: treeOpts,
		chunkCfg: chunker.Config{
			MaxChunkSize: cfg.MaxChunkSize,
			OverlapRatio: cfg.OverlapRatio,
			MinChunk:     cfg.MinChunk,
		},
		mode: chunker.Mode(cfg.ChunkMode),
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.db, o.log, o.treeOpts, o.mode, o.chunkCfg)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// DB returns the store for direct use by API handlers.
func (o *Orchestrator) DB() *store.Store {
	return o.db
}
