package domain

import "time"

// StepRecord is the persisted form of a StepResult.
type StepRecord struct {
	StepID string `json:"step_id"`
	Status string `json:"status"`
	Detail string `json:"detail,omitzero"`
}

// Receipt records the last run of a sequence on this host.
type Receipt struct {
	Sequence    string       `json:"sequence"`
	Platform    string       `json:"platform"`
	Fingerprint string       `json:"fingerprint,omitzero"`
	Succeeded   bool         `json:"succeeded"`
	FailedStep  string       `json:"failed_step,omitzero"`
	Steps       []StepRecord `json:"steps,omitzero"`
	Timestamp   time.Time    `json:"timestamp,omitzero"`
}

// NewReceipt converts a report into its persisted form.
func NewReceipt(report *SequenceReport, fingerprint string, now time.Time) Receipt {
	r := Receipt{
		Sequence:    report.Sequence,
		Platform:    report.Platform.String(),
		Fingerprint: fingerprint,
		Succeeded:   report.Succeeded(),
		Timestamp:   now,
	}
	if step, ok := report.FailedStep(); ok {
		r.FailedStep = step
	}
	for _, res := range report.Outcomes {
		rec := StepRecord{StepID: res.StepID, Status: res.Outcome.Status.String()}
		switch {
		case res.Outcome.Err != nil:
			rec.Detail = res.Outcome.Err.Error()
		case res.Outcome.Reason != "":
			rec.Detail = string(res.Outcome.Reason)
		}
		r.Steps = append(r.Steps, rec)
	}
	return r
}
