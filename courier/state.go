package courier

import "fmt"

// State is the lifecycle state of a Fixture.
type State int

const (
	Unborn State = iota
	Created
	Resolved
	InUse
	Deleted
	ResolutionFailed
	DeletionFailed
)

func (s State) String() string {
	switch s {
	case Unborn:
		return "unborn"
	case Created:
		return "created"
	case Resolved:
		return "resolved"
	case InUse:
		return "in use"
	case Deleted:
		return "deleted"
	case ResolutionFailed:
		return "resolution failed"
	case DeletionFailed:
		return "deletion failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
