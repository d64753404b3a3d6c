package study

// State is a step of a single submission.
type State int

const (
	Idle State = iota
	InputCollected
	TaskSelected
	Submitted
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InputCollected:
		return "input_collected"
	case TaskSelected:
		return "task_selected"
	case Submitted:
		return "submitted"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Class groups failures by what the user has to fix.
type Class int

const (
	ClassInput Class = iota + 1
	ClassConfiguration
	ClassRemote
	ClassEmpty
)

func (c Class) String() string {
	switch c {
	case ClassInput:
		return "input"
	case ClassConfiguration:
		return "configuration"
	case ClassRemote:
		return "remote"
	case ClassEmpty:
		return "empty"
	default:
		return "unknown"
	}
}
