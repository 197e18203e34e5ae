package harness

// CaseResult is the outcome of one case.
type CaseResult struct {
	// Name is the case name.
	Name string `json:"name"`

	// Pass indicates every expectation of the case held.
	Pass bool `json:"pass"`

	// SQL is the rendered statement, empty when translation failed.
	SQL string `json:"sql,omitempty"`

	// ErrorCode is the code of the translation error, if any.
	ErrorCode string `json:"error_code,omitempty"`

	// Errors contains mismatch messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// Report is the outcome of a suite run.
type Report struct {
	// Suite is the suite name.
	Suite string `json:"suite"`

	// Pass is true when every case passed.
	Pass bool `json:"pass"`

	// Cases holds one result per case, in suite order.
	Cases []CaseResult `json:"cases"`
}

// Failed returns the results that did not pass.
func (r *Report) Failed() []CaseResult {
	var failed []CaseResult
	for _, c := range r.Cases {
		if !c.Pass {
			failed = append(failed, c)
		}
	}
	return failed
}

// addError records a mismatch and marks the case as failed.
func (c *CaseResult) addError(msg string) {
	c.Errors = append(c.Errors, msg)
	c.Pass = false
}
