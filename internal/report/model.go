package report

// Status represents the outcome of checking one commit, or a whole run.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// CommitResult is the result of checking a single commit.
type CommitResult struct {
	SHA    string `json:"sha"`
	Title  string `json:"title,omitempty"`
	Status Status `json:"status"`
	Rule   string `json:"rule,omitempty"` // violated rule kind, failures only
	Note   string `json:"note,omitempty"`
}

// Report summarizes one validation run.
type Report struct {
	Status  Status         `json:"status"` // pass or fail
	Range   string         `json:"range"`
	Commits []CommitResult `json:"commits"` // in check order
	Failed  []string       `json:"failed"`  // ids of failing commits
}

// New creates a passing report for rng with no commits recorded yet.
func New(rng string) *Report {
	return &Report{
		Status:  StatusPass,
		Range:   rng,
		Commits: []CommitResult{},
		Failed:  []string{},
	}
}

// Add records a result and keeps Status and Failed consistent with it.
func (r *Report) Add(res CommitResult) {
	r.Commits = append(r.Commits, res)
	if res.Status == StatusFail {
		r.Failed = append(r.Failed, res.SHA)
		r.Status = StatusFail
	}
}

// Counts returns how many commits ended in each status.
func (r *Report) Counts() map[Status]int {
	counts := map[Status]int{StatusPass: 0, StatusFail: 0, StatusSkip: 0}
	for _, c := range r.Commits {
		counts[c.Status]++
	}
	return counts
}
