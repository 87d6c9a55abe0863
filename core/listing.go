package core

// ListOptions parameterizes an ordered, optionally limited, collection query.
type ListOptions struct {
	Limit   int    // 0 = no limit
	OrderBy string // empty = kind's default ordering field
	Desc    bool
}

// FailurePolicy makes the read/write error asymmetry an explicit contract:
// list reads absorb remote failures and substitute fallback data, everything
// else propagates to the caller.
type FailurePolicy int

const (
	Propagate FailurePolicy = iota
	AbsorbAndSubstitute
)
