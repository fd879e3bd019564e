package report

// TestFailure captures one failing test extracted from a job's report artifact.
type TestFailure struct {
	Suite   string `json:"suite"`
	Test    string `json:"test"`
	Stage   string `json:"stage"`
	Job     string `json:"job"`
	Kind    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
	Output  string `json:"output"`
}
