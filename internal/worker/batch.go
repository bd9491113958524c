package worker

import (
	"context"
	"fmt"

	"github.com/ppiankov/wikibio/internal/model"
)

// Inserter is the write side of a database sink
type Inserter interface {
	Name() string
	Insert(ctx context.Context, records []model.Record) error
}

// InsertJob writes one batch of records to a sink
type InsertJob struct {
	Index   int
	Records []model.Record
	Sink    Inserter
	Limiter *Limiter
}

// Execute waits for the sink's rate limit and inserts the batch
func (j *InsertJob) Execute(ctx context.Context) Result {
	res := &BatchResult{Index: j.Index, Size: len(j.Records)}

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx); err != nil {
			res.Error = fmt.Errorf("rate limit: %w", err)
			return res
		}
	}

	if err := j.Sink.Insert(ctx, j.Records); err != nil {
		res.Error = fmt.Errorf("batch %d: %w", j.Index, err)
	}
	return res
}

// BatchResult represents the outcome of one batch insert
type BatchResult struct {
	Index int
	Size  int
	Error error
}

// GetError returns the error from the batch result
func (r *BatchResult) GetError() error {
	return r.Error
}

// BatchProcessor loads records into a sink in concurrent batches
type BatchProcessor struct {
	sink        Inserter
	limiter     *Limiter
	batchSize   int
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(sink Inserter, batchSize, concurrency int, limiter *Limiter) *BatchProcessor {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &BatchProcessor{
		sink:        sink,
		limiter:     limiter,
		batchSize:   batchSize,
		concurrency: concurrency,
	}
}

// Batches splits records into consecutive slices of at most size records
func Batches(records []model.Record, size int) [][]model.Record {
	if size <= 0 {
		size = 1
	}

	var out [][]model.Record
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		out = append(out, records[start:end])
	}
	return out
}

// Process inserts all records and returns one result per submitted batch.
// onResult, if non-nil, is called from the calling goroutine as results arrive.
func (b *BatchProcessor) Process(ctx context.Context, records []model.Record, onResult func(*BatchResult)) []*BatchResult {
	batches := Batches(records, b.batchSize)
	if len(batches) == 0 {
		return []*BatchResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, batch := range batches {
			job := &InsertJob{
				Index:   i,
				Records: batch,
				Sink:    b.sink,
				Limiter: b.limiter,
			}
			if !pool.Submit(job) {
				return
			}
		}
	}()

	results := make([]*BatchResult, 0, len(batches))
	for r := range pool.Results() {
		br := r.(*BatchResult)
		if onResult != nil {
			onResult(br)
		}
		results = append(results, br)
	}

	return results
}
