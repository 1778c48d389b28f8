package diag

// Severity classifies a Message (§4.A, §7).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Message is one diagnostic line: a source file, a location, a severity
// and human text, plus an optional structured Data payload for tooling
// that wants more than prose (mirrors internal/errors.Report's
// Code/Phase/Message/Span/Data shape, flattened to the per-Message level
// so a single Bundle can mix severities/phases across its Messages).
type Message struct {
	Code     string
	Phase    string
	File     string
	Location Location
	Severity Severity
	Text     string
	Data     map[string]any
}

func (m Message) isSynthetic() bool { return m.Location.IsSynthetic }

// Bundle is an ordered list of Messages that share one logical cause: a
// primary message (conventionally Messages[0]) followed by clarifying
// notes. Bundles are the unit a pass returns and the pipeline driver
// short-circuits on (§7): they render atomically, never partially.
type Bundle []Message

// IsSynthetic reports whether every Message in the bundle anchors on a
// synthetic location. A bundle with at least one non-synthetic Message is
// a user-facing bundle even if some of its notes are synthetic.
func (b Bundle) IsSynthetic() bool {
	for _, m := range b {
		if !m.isSynthetic() {
			return false
		}
	}
	return len(b) > 0
}

// HasErrors reports whether any Message in the bundle is an error (as
// opposed to only warnings/notes).
func (b Bundle) HasErrors() bool {
	for _, m := range b {
		if m.Severity == SeverityError {
			return true
		}
	}
	return false
}

// SplitErrors partitions bundles into (user, synthetic) the way
// split_errors does in §4.A: a bundle goes to synthetic iff every Message
// in it is synthetic.
func SplitErrors(bundles []Bundle) (user []Bundle, synthetic []Bundle) {
	for _, b := range bundles {
		if b.IsSynthetic() {
			synthetic = append(synthetic, b)
		} else {
			user = append(user, b)
		}
	}
	return user, synthetic
}

// FilterErrors returns only the user-facing partition of split_errors.
func FilterErrors(bundles []Bundle) []Bundle {
	user, _ := SplitErrors(bundles)
	return user
}

// AnyErrors reports whether any bundle in the list contains an error
// severity Message.
func AnyErrors(bundles []Bundle) bool {
	for _, b := range bundles {
		if b.HasErrors() {
			return true
		}
	}
	return false
}

// NewBundle builds a primary Message plus trailing notes into one Bundle.
func NewBundle(primary Message, notes ...Message) Bundle {
	return append(Bundle{primary}, notes...)
}

// Errorf builds a primary error Message (a convenience used throughout
// the passes, mirroring the teacher's errors.NewTypecheck/NewLinking/...
// constructor family).
func Errorf(code, phase, file string, loc Location, text string) Message {
	return Message{Code: code, Phase: phase, File: file, Location: loc, Severity: SeverityError, Text: text}
}

// Notef builds a note Message pointing at a secondary location.
func Notef(code, phase, file string, loc Location, text string) Message {
	return Message{Code: code, Phase: phase, File: file, Location: loc, Severity: SeverityNote, Text: text}
}

// Warnf builds a warning Message.
func Warnf(code, phase, file string, loc Location, text string) Message {
	return Message{Code: code, Phase: phase, File: file, Location: loc, Severity: SeverityWarning, Text: text}
}
