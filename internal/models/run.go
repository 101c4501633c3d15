package models

import "time"

// FileResult represents the outcome of processing a single stylesheet
type FileResult struct {
	Path       string        // Absolute path of the processed file
	Changed    bool          // Buffer differs from the input
	Directives int           // Wildcard directives found
	Targets    int           // Concrete directives emitted
	Empty      []string      // Patterns that expanded to no files
	BytesIn    int           // Size of the input buffer
	BytesOut   int           // Size of the output buffer
	Output     string        // Where the result was written ("" when not written)
	Error      error         // Error if processing failed
	Duration   time.Duration // Time taken to process
}

// Failed reports whether processing the file returned an error
func (r FileResult) Failed() bool {
	return r.Error != nil
}

// RunSummary represents the aggregate result of a pipeline run
type RunSummary struct {
	TotalFiles  int           // Number of files scheduled
	Processed   int           // Files processed without error
	Changed     int           // Files whose contents changed
	Failed      int           // Files that failed
	Directives  int           // Wildcard directives expanded
	Targets     int           // Concrete directives emitted
	BytesIn     int64         // Total input size
	BytesOut    int64         // Total output size
	Duration    time.Duration // Wall time of the run
	Results     []FileResult  // Per-file results in input order
	FailedFiles []FileResult  // Details of failed files
}

// Add folds a file result into the summary.
func (s *RunSummary) Add(r FileResult) {
	s.Results = append(s.Results, r)
	if r.Failed() {
		s.Failed++
		s.FailedFiles = append(s.FailedFiles, r)
		return
	}
	s.Processed++
	if r.Changed {
		s.Changed++
	}
	s.Directives += r.Directives
	s.Targets += r.Targets
	s.BytesIn += int64(r.BytesIn)
	s.BytesOut += int64(r.BytesOut)
}

// EmptyExpansions returns every (file, pattern) pair that expanded to nothing.
func (s *RunSummary) EmptyExpansions() map[string][]string {
	out := make(map[string][]string)
	for _, r := range s.Results {
		if len(r.Empty) > 0 {
			out[r.Path] = append(out[r.Path], r.Empty...)
		}
	}
	return out
}
