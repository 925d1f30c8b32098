package dialogue

const (
	// PriorityCan marks a line that may interrupt.
	PriorityCan = 2

	// PriorityWant marks a line that waits for a quiet moment.
	PriorityWant = 1
)

// NumberOfSmallTalks is how many RandomSmallTalkN lines the default table has.
const NumberOfSmallTalks = 3

// SmallTalkPrefix starts the id of every small talk line.
const SmallTalkPrefix = "RandomSmallTalk"

// Line is one chirp.
type Line struct {
	ID         string `json:"id" yaml:"id"`
	Text       string `json:"text" yaml:"text"`
	Priority   int    `json:"priority" yaml:"priority"`
	Repeatable bool   `json:"repeatable" yaml:"repeatable"`
	Used       bool   `json:"used" yaml:"-"`
}

// EffectivePriority is Priority, except that a repeatable line which has
// already been used drops to PriorityWant.
func (l Line) EffectivePriority() int {
	if l.Used && l.Repeatable && l.Priority > PriorityWant {
		return PriorityWant
	}
	return l.Priority
}

// Available reports whether the line may still be said.
func (l Line) Available() bool {
	return !l.Used || l.Repeatable
}
