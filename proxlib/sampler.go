package proxlib

import "math/rand"

// SampleEntries draws min(size, len(entries)) entries uniformly at
// random without replacement. An empty input or a non-positive size is
// not an error, the sample is just empty.
func SampleEntries(entries []Entry, size int) []Entry {
	if size > len(entries) {
		size = len(entries)
	}

	if size <= 0 {
		return nil
	}

	sample := make([]Entry, 0, size)

	for _, idx := range rand.Perm(len(entries))[:size] {
		sample = append(sample, entries[idx])
	}

	return sample
}
