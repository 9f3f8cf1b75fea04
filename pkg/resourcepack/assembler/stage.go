package assembler

// Stage is a step of the assembly state machine.
type Stage int

const (
	StageEmpty Stage = iota
	StageValidating
	StageAllocating
	StageDescripting
	StageMaterializing
	StageArchiving
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageValidating:
		return "validating"
	case StageAllocating:
		return "allocating"
	case StageDescripting:
		return "descripting"
	case StageMaterializing:
		return "materializing"
	case StageArchiving:
		return "archiving"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}
