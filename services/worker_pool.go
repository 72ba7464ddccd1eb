// Package services holds the business logic between handlers and stores.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/binna/binna-backend/config"
	"github.com/binna/binna-backend/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const defaultJobTimeout = 30 * time.Second

// Job represents a unit of work for the worker pool.
type Job struct {
	// Name is a descriptive name for logging purposes
	Name string
	// Execute is the function that performs the work
	Execute func(ctx context.Context) error
}

// JobSubmitter accepts background work. Submit never blocks.
type JobSubmitter interface {
	Submit(job Job) bool
}

// WorkerPool runs background jobs (order confirmation mail) on a bounded
// set of workers. Shutdown drains the queue before returning.
type WorkerPool struct {
	jobQueue   chan Job
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	logger     *zap.SugaredLogger
	metrics    *workerPoolMetrics
	config     config.WorkerPoolConfig
	jobTimeout time.Duration
	mu         sync.RWMutex
	running    bool
	stopped    bool
}

var _ JobSubmitter = (*WorkerPool)(nil)

type workerPoolMetrics struct {
	queueDepth    prometheus.Gauge
	activeWorkers prometheus.Gauge
	completedJobs prometheus.Counter
	droppedJobs   prometheus.Counter
	errorCount    prometheus.Counter
	jobDuration   prometheus.Histogram
}

// Singleton pattern for metrics (avoid double registration in tests).
var (
	wpMetricsInstance *workerPoolMetrics
	wpMetricsOnce     sync.Once
	wpDefaultRegistry = prometheus.DefaultRegisterer
)

func newWorkerPoolMetrics() *workerPoolMetrics {
	wpMetricsOnce.Do(func() {
		factory := promauto.With(wpDefaultRegistry)
		wpMetricsInstance = &workerPoolMetrics{
			queueDepth: factory.NewGauge(prometheus.GaugeOpts{
				Name: "binna_worker_pool_queue_depth",
				Help: "Current number of jobs waiting in queue",
			}),
			activeWorkers: factory.NewGauge(prometheus.GaugeOpts{
				Name: "binna_worker_pool_active_workers",
				Help: "Current number of workers processing jobs",
			}),
			completedJobs: factory.NewCounter(prometheus.CounterOpts{
				Name: "binna_worker_pool_completed_jobs_total",
				Help: "Total number of finished jobs",
			}),
			droppedJobs: factory.NewCounter(prometheus.CounterOpts{
				Name: "binna_worker_pool_dropped_jobs_total",
				Help: "Total number of jobs dropped due to full queue or shutdown",
			}),
			errorCount: factory.NewCounter(prometheus.CounterOpts{
				Name: "binna_worker_pool_errors_total",
				Help: "Total number of job execution errors",
			}),
			jobDuration: factory.NewHistogram(prometheus.HistogramOpts{
				Name:    "binna_worker_pool_job_duration_seconds",
				Help:    "Time taken to execute jobs",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			}),
		}
	})
	return wpMetricsInstance
}

// NewWorkerPool creates a pool. Call Start before submitting jobs.
func NewWorkerPool(cfg config.WorkerPoolConfig) *WorkerPool {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		jobQueue:   make(chan Job, cfg.QueueSize),
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger.GetLogger().Named("worker-pool"),
		metrics:    newWorkerPoolMetrics(),
		config:     cfg,
		jobTimeout: defaultJobTimeout,
	}
}

// Start launches the workers. Further calls are no-ops.
func (wp *WorkerPool) Start() {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.running || wp.stopped {
		wp.logger.Warn("Worker pool already started")
		return
	}
	wp.running = true

	wp.logger.Infow("Starting worker pool",
		"maxWorkers", wp.config.MaxWorkers,
		"queueSize", wp.config.QueueSize)

	for i := 0; i < wp.config.MaxWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.executeJob(id, job)
	}
}

func (wp *WorkerPool) executeJob(workerID int, job Job) {
	wp.metrics.activeWorkers.Inc()
	wp.metrics.queueDepth.Dec()
	defer wp.metrics.activeWorkers.Dec()

	start := time.Now()
	jobCtx, cancel := context.WithTimeout(wp.ctx, wp.jobTimeout)
	defer cancel()

	if err := job.Execute(jobCtx); err != nil {
		wp.logger.Errorw("Job execution failed",
			"job", job.Name,
			"workerId", workerID,
			"error", err,
			"duration", time.Since(start))
		wp.metrics.errorCount.Inc()
	} else {
		wp.logger.Debugw("Job completed",
			"job", job.Name,
			"workerId", workerID,
			"duration", time.Since(start))
	}

	wp.metrics.jobDuration.Observe(time.Since(start).Seconds())
	wp.metrics.completedJobs.Inc()
}

// Submit queues a job and reports whether it was accepted. Jobs are
// dropped when the queue is full or the pool is not running.
func (wp *WorkerPool) Submit(job Job) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if !wp.running {
		wp.metrics.droppedJobs.Inc()
		wp.logger.Warnw("Job dropped - pool not running", "job", job.Name)
		return false
	}

	select {
	case wp.jobQueue <- job:
		wp.metrics.queueDepth.Inc()
		return true
	default:
		wp.metrics.droppedJobs.Inc()
		wp.logger.Warnw("Job dropped - queue full",
			"job", job.Name,
			"queueSize", wp.config.QueueSize)
		return false
	}
}

// Shutdown stops accepting jobs and waits for queued and in-flight jobs.
// When ctx ends first the remaining jobs see their context cancelled and
// ctx.Err() is returned.
func (wp *WorkerPool) Shutdown(ctx context.Context) error {
	wp.mu.Lock()
	if !wp.running {
		wp.mu.Unlock()
		return nil
	}
	wp.running = false
	wp.stopped = true
	close(wp.jobQueue)
	wp.mu.Unlock()

	wp.logger.Info("Draining worker pool...")

	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		wp.cancel()
		wp.logger.Info("Worker pool shutdown complete")
		return nil
	case <-ctx.Done():
		wp.cancel()
		wp.logger.Warn("Worker pool shutdown timed out - cancelling remaining jobs")
		return ctx.Err()
	}
}

// QueueDepth returns the current number of jobs waiting in the queue.
func (wp *WorkerPool) QueueDepth() int {
	return len(wp.jobQueue)
}

func (wp *WorkerPool) IsRunning() bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	return wp.running
}
