package corpus

import "strings"

// Reassemble joins consecutive sentence spans into one paragraph per count.
// Spans are taken left to right; once sentences run out the remaining
// paragraphs are truncated or empty. Surplus sentences are ignored.
func Reassemble(sentences []string, counts []int) []string {
	paragraphs := make([]string, len(counts))

	idx := 0
	for i, n := range counts {
		start := min(idx, len(sentences))
		end := min(idx+n, len(sentences))
		paragraphs[i] = strings.Join(sentences[start:end], " ")
		idx += n
	}

	return paragraphs
}

// SpanTotal returns the number of sentences the counts claim
func SpanTotal(counts []int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
