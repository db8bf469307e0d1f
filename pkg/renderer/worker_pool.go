package renderer

import (
	"context"
	"image"
	"sync"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// RowTask represents a scan line rendering task for the worker pool
type RowTask struct {
	Row  int   // Scan line, counted from the bottom of the image
	Seed int64 // Seed for the row's private random generator
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Row   int
	Error error
}

// WorkerPool manages parallel scan line rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	img         *image.RGBA
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool rendering into img.
// numWorkers <= 0 is treated as 1.
func NewWorkerPool(raytracer *Raytracer, img *image.RGBA, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	// Buffer every row so submitting never blocks
	rows := max(1, raytracer.Height())

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, rows),
		resultQueue: make(chan RowResult, rows),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			img:         img,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop waits for queued tasks to drain, then closes the result queue.
// No tasks may be submitted after Stop.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result; ok is false once the pool is stopped and drained
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if err := ctx.Err(); err != nil {
			w.resultQueue <- RowResult{Row: task.Row, Error: err}
			continue
		}

		// Each row gets its own generator so rows never share random state
		// and the image does not depend on how rows land on workers
		sampler := core.NewSeededSampler(task.Seed)
		w.raytracer.RenderRow(w.img, task.Row, sampler)

		w.resultQueue <- RowResult{Row: task.Row}
	}
}
