package reconcile

// RowError locates one rejected row for the end user. Row is 1-based and
// counts the header line, so it matches what a spreadsheet editor shows.
type RowError struct {
	Row   int    `json:"row"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

// Outcome is the batch report of one import request. It is returned even
// when every row failed; a fully-skipped batch is not a transport error.
type Outcome struct {
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors"`
}

func newOutcome() *Outcome {
	return &Outcome{Errors: []RowError{}}
}

func (o *Outcome) skip(rowNumber int, code, message string) {
	o.Skipped++
	o.Errors = append(o.Errors, RowError{Row: rowNumber, Code: code, Error: message})
}

// Merge folds another outcome into this one, preserving error order. Used
// when the CLI imports several files in one invocation.
func (o *Outcome) Merge(other *Outcome) {
	if other == nil {
		return
	}
	o.Created += other.Created
	o.Updated += other.Updated
	o.Skipped += other.Skipped
	o.Errors = append(o.Errors, other.Errors...)
}
