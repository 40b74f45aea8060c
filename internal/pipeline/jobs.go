package pipeline

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Job names one input file and where its document goes.
type Job struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Result reports the outcome of one Job.
type Result struct {
	Job
	Bytes    int           `json:"bytes"`
	Hash     string        `json:"sha256,omitempty"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// OK reports whether the job produced a document.
func (r Result) OK() bool {
	return r.Err == nil
}

// OutputPath derives "<name>.xml" next to the input.
func OutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".xml"
}

// JobsFor builds one job per input using OutputPath.
func JobsFor(inputs []string) []Job {
	jobs := make([]Job, len(inputs))
	for i, in := range inputs {
		jobs[i] = Job{Input: in, Output: OutputPath(in)}
	}
	return jobs
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
