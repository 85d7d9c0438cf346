package domain

type VoteChoice int

const (
	VoteDown VoteChoice = iota
	VoteUp
	VoteNeutralFromDown
	VoteNeutralFromUp
	VoteUpFromDown
	VoteDownFromUp
)

// voteDeltas maps each choice to the signed change it applies to a counter.
var voteDeltas = map[VoteChoice]int{
	VoteDown:            -1,
	VoteUp:              1,
	VoteNeutralFromDown: 1,
	VoteNeutralFromUp:   -1,
	VoteUpFromDown:      2,
	VoteDownFromUp:      -2,
}

func (c VoteChoice) Valid() bool {
	_, ok := voteDeltas[c]
	return ok
}

func (c VoteChoice) Delta() int {
	return voteDeltas[c]
}

func (c VoteChoice) IsUpvote() bool {
	return c == VoteUp || c == VoteUpFromDown
}

func (c VoteChoice) Status() VoteStatus {
	switch c {
	case VoteUp, VoteUpFromDown:
		return VoteStatusUp
	case VoteDown, VoteDownFromUp:
		return VoteStatusDown
	default:
		return VoteStatusNone
	}
}

// VoteDelta returns the counter change for moving from prev to next.
// Re-submitting the stored choice changes nothing.
func VoteDelta(prev *VoteChoice, next VoteChoice) (int, bool) {
	if prev != nil && *prev == next {
		return 0, false
	}
	return next.Delta(), true
}

type VoteStatus string

const (
	VoteStatusUp   VoteStatus = "up"
	VoteStatusDown VoteStatus = "down"
	VoteStatusNone VoteStatus = ""
)

type TargetKind string

const (
	TargetComment TargetKind = "comment"
	TargetHoliday TargetKind = "holiday"
	TargetPost    TargetKind = "post"
)

type VoteTarget struct {
	Kind TargetKind `json:"kind"`
	ID   int64      `json:"id"`
}

type Vote struct {
	UserID   int64      `json:"user_id" db:"user_id"`
	TargetID int64      `json:"target_id" db:"target_id"`
	Choice   VoteChoice `json:"choice" db:"choice"`
}

type VoteInput struct {
	Choice *int `json:"choice" validate:"required"`
}

// VoteOutcome is the result of applying one vote.
type VoteOutcome struct {
	Target   VoteTarget `json:"target"`
	Votes    int        `json:"votes"`
	Delta    int        `json:"-"`
	Changed  bool       `json:"-"`
	AuthorID int64      `json:"-"`
	Scope    Scope      `json:"-"`
	Status   VoteStatus `json:"vote_status"`
}
