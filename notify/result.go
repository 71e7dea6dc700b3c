package notify

const (
	StatusSent    = "sent"
	StatusSkipped = "skipped"
)

// Result is what a best-effort sender reports. A missing integration is a
// skip, never an error.
type Result struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func Sent() Result { return Result{Status: StatusSent} }

func Skipped(reason string) Result { return Result{Status: StatusSkipped, Reason: reason} }

func (r Result) IsSkipped() bool { return r.Status == StatusSkipped }
