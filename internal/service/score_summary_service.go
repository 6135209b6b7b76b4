package service

import (
	"fmt"
	"math"
)

const (
	NoAnswersSummary = "No answers submitted. Score not available."

	goodPerformanceThreshold    = 7.0
	averagePerformanceThreshold = 5.0
)

type ScoreSummary struct {
	Average float64
	Tier    string
	Summary string
}

type ScoreSummaryService interface {
	// Summarize averages the per-question scores. ok is false when there is nothing to average.
	Summarize(scores []int) (summary ScoreSummary, ok bool)
}

type scoreSummaryServiceImpl struct{}

func NewScoreSummaryService() ScoreSummaryService {
	return &scoreSummaryServiceImpl{}
}

func (s *scoreSummaryServiceImpl) Summarize(scores []int) (ScoreSummary, bool) {
	if len(scores) == 0 {
		return ScoreSummary{Summary: NoAnswersSummary}, false
	}
	total := 0
	for _, sc := range scores {
		total += sc
	}
	avg := roundOneDecimal(float64(total) / float64(len(scores)))
	tier := performanceTier(avg)
	return ScoreSummary{
		Average: avg,
		Tier:    tier,
		Summary: fmt.Sprintf("Average Score: %s/10. %s", formatScore(avg), tier),
	}, true
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

func performanceTier(avg float64) string {
	switch {
	case avg >= goodPerformanceThreshold:
		return "Good performance. Strong fundamentals."
	case avg >= averagePerformanceThreshold:
		return "Average performance. Needs improvement."
	default:
		return "Weak performance. Practice recommended."
	}
}

// formatScore always keeps one decimal so 8 reads as "8.0".
func formatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
