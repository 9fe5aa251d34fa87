package supervisor

// State is the lifecycle state of a supervised worker. States only move
// forward: NotStarted → Starting → Running → ShuttingDown → Terminated.
// A failed start moves from Starting straight to Terminated.
type State int

const (
	NotStarted State = iota
	Starting
	Running
	ShuttingDown
	Terminated
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting_down"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}
