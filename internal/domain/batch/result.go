package batch

// ItemStatus is the processing outcome of a single notebook in a re-analysis run.
type ItemStatus string

// Batch item status values.
const (
	StatusOK      ItemStatus = "ok"
	StatusSkipped ItemStatus = "skipped"
	StatusPending ItemStatus = "pending" // dry run: would be analyzed
	StatusError   ItemStatus = "error"
)

// Result is the outcome of processing one notebook.
type Result struct {
	id      string
	title   string
	status  ItemStatus
	entries int
	err     error
}

// NewOK creates a successful result; entries is the number of analyzed entries.
func NewOK(id, title string, entries int) Result {
	return Result{id: id, title: title, status: StatusOK, entries: entries}
}

// NewSkipped creates a result for a notebook that already had an analysis.
func NewSkipped(id, title string) Result {
	return Result{id: id, title: title, status: StatusSkipped}
}

// NewPending creates a dry-run result for a notebook that would be analyzed.
func NewPending(id, title string, entries int) Result {
	return Result{id: id, title: title, status: StatusPending, entries: entries}
}

// NewError creates a failed result.
func NewError(id, title string, err error) Result {
	return Result{id: id, title: title, status: StatusError, err: err}
}

// ID returns the notebook identifier.
func (r Result) ID() string { return r.id }

// Title returns the notebook title.
func (r Result) Title() string { return r.title }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Entries returns the number of entries analyzed (or to be analyzed).
func (r Result) Entries() int { return r.entries }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }
