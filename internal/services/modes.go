package services

// Mode is a conversational persona selecting the system instruction sent
// ahead of the chat history.
type Mode string

const (
	ModeJob    Mode = "Job"
	ModeSchool Mode = "School"
	ModeCasual Mode = "Casual"

	DefaultMode = ModeCasual
)

// Modes lists every recognized mode.
var Modes = []Mode{ModeJob, ModeSchool, ModeCasual}

// ResolveMode maps a client-supplied mode name to a known Mode. Names are
// matched exactly; anything else, including "", yields DefaultMode.
func ResolveMode(name string) Mode {
	switch m := Mode(name); m {
	case ModeJob, ModeSchool, ModeCasual:
		return m
	default:
		return DefaultMode
	}
}

// Instruction returns the system instruction for m. Unknown modes get the
// default mode's instruction.
func (m Mode) Instruction() string {
	switch m {
	case ModeJob:
		return "You are a professional, friendly hiring manager for a tech company. Keep your questions relevant to a job interview and your responses concise."
	case ModeSchool:
		return "You are a university admissions officer. You are formal and inquisitive. Ask questions relevant to a prospective student's academic and personal background."
	case ModeCasual:
		return "You are a friendly acquaintance. Keep the conversation light, engaging, and informal."
	default:
		return DefaultMode.Instruction()
	}
}
