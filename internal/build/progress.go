package build

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

func (l ProgressLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// ProgressEvent represents a build progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}
