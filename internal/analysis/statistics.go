// SPDX-License-Identifier: Apache-2.0

package analysis

import "github.com/cirscan/cirscan/internal/evidence"

// BatchStatistics aggregates a batch. Failed documents count toward Total
// and Failed only.
type BatchStatistics struct {
	Total          int     `json:"total"`
	Succeeded      int     `json:"succeeded"`
	Failed         int     `json:"failed"`
	Go             int     `json:"go"`
	NoGo           int     `json:"no_go"`
	GoPercentage   float64 `json:"go_percentage"`
	AverageScore   float64 `json:"average_compliance_score"`
	Met            int     `json:"met"`
	Partial        int     `json:"partial"`
	NotMet         int     `json:"not_met"`
	UnableToVerify int     `json:"unable_to_verify"`
}

// Statistics totals results.
func Statistics(results []Result) BatchStatistics {
	s := BatchStatistics{Total: len(results)}
	var scoreSum float64
	for _, r := range results {
		if r.Status == StatusError {
			s.Failed++
			continue
		}
		s.Succeeded++
		if r.Decision == evidence.DecisionGo {
			s.Go++
		} else {
			s.NoGo++
		}
		scoreSum += r.MatchSummary.ComplianceScore
		s.Met += r.MatchSummary.Met
		s.Partial += r.MatchSummary.Partial
		s.NotMet += r.MatchSummary.NotMet
		s.UnableToVerify += r.MatchSummary.UnableToVerify
	}
	if s.Succeeded > 0 {
		s.GoPercentage = float64(s.Go) / float64(s.Succeeded) * 100
		s.AverageScore = scoreSum / float64(s.Succeeded)
	}
	return s
}
