package locator

// State is the merge lifecycle state of a locator.
type State int32

const (
	// StateEmpty is the state of a new locator. Producers insert points in
	// this state.
	StateEmpty State = iota
	// StateInitialized follows InitializeMerge.
	StateInitialized
	// StateMerging is entered by the first Merge call.
	StateMerging
	// StateFinalized follows FixSizeOfPointArray. The locator is read-only.
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateInitialized:
		return "initialized"
	case StateMerging:
		return "merging"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}
