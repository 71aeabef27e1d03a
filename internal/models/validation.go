package models

// Status is the outcome of a single validation check.
type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusWarning Status = "WARNING"
)

// CheckResult captures the outcome of one named validation check.
// ErrorCount and PassCount partition the rows that were actually
// evaluated; rows a check skips by rule belong to neither.
type CheckResult struct {
	Name       string `json:"check_name"`
	Status     Status `json:"status"`
	Message    string `json:"message"`
	ErrorCount int    `json:"error_count"`
	PassCount  int    `json:"pass_count"`
	Details    string `json:"details"`
}

// RunSummary aggregates the results of one table's check run.
type RunSummary struct {
	TotalChecks   int    `json:"total_checks"`
	Passed        int    `json:"passed"`
	Failed        int    `json:"failed"`
	Warnings      int    `json:"warnings"`
	TotalErrors   int    `json:"total_errors"`
	OverallStatus Status `json:"overall_status"`
}

// Summarize folds a list of check results into a run summary. Overall
// status is FAIL if any check failed, WARNING if any warned, PASS
// otherwise.
func Summarize(results []CheckResult) RunSummary {
	s := RunSummary{TotalChecks: len(results), OverallStatus: StatusPass}
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			s.Passed++
		case StatusFail:
			s.Failed++
		case StatusWarning:
			s.Warnings++
		}
		s.TotalErrors += r.ErrorCount
	}
	if s.Failed > 0 {
		s.OverallStatus = StatusFail
	} else if s.Warnings > 0 {
		s.OverallStatus = StatusWarning
	}
	return s
}

// TableResult bundles one record family's extracted table with its
// validation output. Table is nil when extraction failed; Err carries
// the extraction failure message in that case.
type TableResult struct {
	Table   *Table        `json:"-"`
	Checks  []CheckResult `json:"checks"`
	Summary RunSummary    `json:"summary"`
	Err     string        `json:"error,omitempty"`
}

// CombinedSummary rolls the three per-table summaries into one.
type CombinedSummary struct {
	TotalChecks   int    `json:"total_checks"`
	Passed        int    `json:"passed"`
	Failed        int    `json:"failed"`
	Warnings      int    `json:"warnings"`
	TotalErrors   int    `json:"total_errors"`
	TotalRecords  int    `json:"total_records"`
	OverallStatus Status `json:"overall_status"`
}

// ProcessResult is the full output of one processing run over a PSA
// payload: one TableResult per record family plus the combined view.
// AllChecks holds every check result with its name prefixed by the
// table kind, in Product, Planogram, Fixture order.
type ProcessResult struct {
	Product   TableResult     `json:"product"`
	Planogram TableResult     `json:"planogram"`
	Fixture   TableResult     `json:"fixture"`
	Combined  CombinedSummary `json:"combined"`
	AllChecks []CheckResult   `json:"all_checks"`
}
