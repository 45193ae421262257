package mdpreview

// Snapshot is the immutable text of the document at the moment of submission.
// The zero value is a valid snapshot holding the empty string.
type Snapshot struct {
	text     string
	sentinel bool
}

// NewSnapshot captures text.
func NewSnapshot(text string) Snapshot {
	return Snapshot{text: text}
}

// stopSnapshot is the queue marker that ends the worker loop.
// It cannot be built from any text, so the empty string stays renderable.
var stopSnapshot = Snapshot{sentinel: true}

// Text returns the captured document text.
func (s Snapshot) Text() string { return s.text }

// WorkerConfig holds the rendering options read at the start of every
// conversion. Changes apply to the next conversion, never to one in flight.
type WorkerConfig struct {
	MathSupport           bool
	CodeHighlighting      bool
	CodeHighlightingStyle string
}

// DefaultWorkerConfig returns math off, highlighting on with the default
// Chroma style.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		CodeHighlighting:      true,
		CodeHighlightingStyle: DefaultCodeStyle,
	}
}

// DefaultCodeStyle is the Chroma style of the built-in preview style.
const DefaultCodeStyle = "friendly"

// Result is the output of one conversion.
type Result struct {
	HTML string // full page built from the preview template
	TOC  string // nested <ul> of heading links, empty without headings
}

// State is the lifecycle state of a Generator.
type State int

const (
	StateIdle     State = iota // created, worker not started
	StateRunning               // worker draining the queue
	StateStopping              // stop marker queued, pending snapshots still rendering
	StateStopped               // worker exited
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Stats is a point-in-time view of generator activity.
type Stats struct {
	Submitted int64 // snapshots accepted by Enqueue
	Rendered  int64 // snapshots converted and delivered
	Failed    int64 // snapshots whose conversion failed or panicked
	Pending   int   // snapshots waiting in the queue
}
