package domain

type ReportInput struct {
	Block bool `json:"block"`
}

type ReportTarget struct {
	Kind TargetKind
	ID   int64
}

// ReportOutcome carries the updated counter and the reported content's author.
type ReportOutcome struct {
	Reports  int   `json:"reports"`
	AuthorID int64 `json:"-"`
	Blocked  bool  `json:"blocked"`
}
