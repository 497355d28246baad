package chunking

// Partition splits items into consecutive chunks of at most size elements,
// preserving order. The final chunk may be smaller. A non-positive size
// yields nil.
func Partition[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		// Full slice expression so appends on a chunk never clobber the next one.
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}
