package systems

import "fmt"

// Span is a half-open index range [Start, End).
type Span struct {
	Start, End int
}

// Len returns the number of indices in the span.
func (s Span) Len() int { return s.End - s.Start }

// Partition splits [0, n) into parts contiguous, non-overlapping spans.
// The first parts-1 spans hold n/parts indices each; the last span absorbs
// the remainder. The last span is the one the orchestrator runs inline.
func Partition(n, parts int) []Span {
	return PartitionInto(nil, n, parts)
}

// PartitionInto is Partition reusing dst's backing array.
func PartitionInto(dst []Span, n, parts int) []Span {
	if parts < 1 {
		panic(fmt.Sprintf("systems: partition into %d parts", parts))
	}
	if n < 0 {
		panic(fmt.Sprintf("systems: partition of negative length %d", n))
	}
	dst = dst[:0]
	size := n / parts
	start := 0
	for i := 0; i < parts-1; i++ {
		dst = append(dst, Span{Start: start, End: start + size})
		start += size
	}
	return append(dst, Span{Start: start, End: n})
}
