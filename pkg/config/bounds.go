package config

import "math"

func BoundTopic(v int) int {
	return int(math.Max(-1, float64(v))) // Default: -1 (no topic)
}

func BoundBatchSize(v int) int {
	return int(math.Max(1, math.Min(1024, float64(v)))) // Default: 8
}

func BoundMinidocSize(v int) int {
	return int(math.Max(1, math.Min(512, float64(v)))) // Default: 10
}

// BoundMaxSentenceLength never lets the cap exceed the 512 positions the
// sentence encoder accepts.
func BoundMaxSentenceLength(v int) int {
	return int(math.Max(1, math.Min(512, float64(v)))) // Default: 512
}

func BoundBaselineTrials(v int) int {
	return int(math.Max(1, math.Min(1000, float64(v)))) // Default: 10
}
