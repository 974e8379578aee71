package provisioning

import "fmt"

// DefaultBatchSize is the number of rows written per insert
const DefaultBatchSize = 1000

// BatchError reports which location batch failed to persist
type BatchError struct {
	Batch  int // zero-based batch index
	Offset int // index of the first location of the batch
	Size   int
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("location batch %d (offset %d, size %d): %v", e.Batch, e.Offset, e.Size, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// Batches splits items into consecutive chunks of at most size elements.
// The chunks share the backing array of items.
func Batches[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultBatchSize
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end:end])
	}
	return out
}
