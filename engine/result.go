package engine

// Outcome is how a run ended.
type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	OutcomeFailed
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "Succeeded"
	case OutcomeFailed:
		return "Failed"
	case OutcomeCancelled:
		return "Cancelled"
	}
	return "Unknown"
}

// Result is the report of one import run.
type Result struct {
	Outcome Outcome
	// Stage is the terminal stage.
	Stage Stage
	// Trace lists every stage the run entered, in order.
	Trace []Stage
	// Folder is the scene folder as given.
	Folder string
	// Scene is the scene name derived from Folder.
	Scene string
	// Container is the selected baked container, if selection got that far.
	Container string
	// OutputDir is the committed asset folder on success.
	OutputDir string
	// Message is the user-facing failure text, empty on success and cancellation.
	Message string
	// Err is an *ImportError on failure.
	Err error
}

// Succeeded reports whether the run persisted its assets.
func (r Result) Succeeded() bool {
	return r.Outcome == OutcomeSucceeded
}
