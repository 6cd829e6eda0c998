package catalog

import (
	"math"
	"time"
)

/*
The catalog is the record of one run: which endpoints were attempted,
which succeeded, and whether the persisted files are still on disk.
It is a primitive for verifying and auditing fetch runs.
*/

// FileStatus reports the post-run availability of one endpoint's
// destination file.
type FileStatus struct {
	EndpointID string `json:"endpoint_id"`
	File       string `json:"file"`
	Available  bool   `json:"available"`
	SizeBytes  int64  `json:"size_bytes,omitempty"`
}

// Catalog represents the summary of a single run over all endpoints.
type Catalog struct {
	RunID       string          `json:"run_id"`
	StartTime   time.Time       `json:"start_time"`
	EndTime     time.Time       `json:"end_time"`
	Attempted   int             `json:"attempted"`
	Succeeded   int             `json:"succeeded"`
	Failed      int             `json:"failed"`
	SuccessRate float64         `json:"success_rate"`
	Outcomes    map[string]bool `json:"outcomes"`
	Files       []FileStatus    `json:"files"`
}

func New(runID string) *Catalog {
	return &Catalog{
		RunID:     runID,
		StartTime: time.Now(),
		Outcomes:  make(map[string]bool),
	}
}

// Record stores the outcome for one endpoint.
func (c *Catalog) Record(endpointID string, succeeded bool) {
	c.Outcomes[endpointID] = succeeded
}

// Finish derives the counts and success rate from the recorded outcomes.
func (c *Catalog) Finish(end time.Time) {
	c.EndTime = end
	c.Succeeded = 0
	c.Failed = 0
	for _, ok := range c.Outcomes {
		if ok {
			c.Succeeded++
		} else {
			c.Failed++
		}
	}
	c.Attempted = c.Succeeded + c.Failed
	c.SuccessRate = Rate(c.Succeeded, c.Failed)
}

func (c *Catalog) AddFile(fs FileStatus) {
	c.Files = append(c.Files, fs)
}

// Rate returns the success percentage rounded to one decimal place.
// An empty run reports 0 rather than dividing by zero; the endpoint
// table is never empty in practice.
func Rate(succeeded, failed int) float64 {
	total := succeeded + failed
	if total == 0 {
		return 0
	}
	return math.Round(float64(succeeded)/float64(total)*1000) / 10
}
