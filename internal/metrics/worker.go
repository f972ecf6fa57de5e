package metrics

import (
	"time"

	"github.com/riverlabs/aquacheck/internal/domain"
)

// JobCompleted records a successful job completion
func JobCompleted(jobType string, duration time.Duration) {
	JobsTotal.WithLabelValues(jobType, "completed").Inc()
	JobDuration.WithLabelValues(jobType).Observe(duration.Seconds())
}

// JobFailed records a job failure
func JobFailed(jobType string) {
	JobsTotal.WithLabelValues(jobType, "failed").Inc()
}

// JobRetried records a job retry attempt
func JobRetried(jobType string) {
	JobRetriesTotal.WithLabelValues(jobType).Inc()
}

// RecordRecognition counts a text recognition call by outcome.
func RecordRecognition(ok bool) {
	status := "success"
	if !ok {
		status = "error"
	}
	RecognitionCalls.WithLabelValues(status).Inc()
}

// RecordScanAnalyzed counts a completed analysis by overall verdict. Results
// with nothing evaluated count under "none".
func RecordScanAnalyzed(result domain.AnalysisResult) {
	verdict := "none"
	if result.Overall != nil {
		verdict = result.Overall.String()
	}
	ScansAnalyzed.WithLabelValues(verdict).Inc()
}
