package bridge

// In-band flow control symbols. Reserved whenever flow control is
// enabled; payload must not rely on these values passing through.
const (
	// XON resumes the remote sender (DC1).
	XON byte = 0x11
	// XOFF pauses the remote sender (DC3).
	XOFF byte = 0x13
)

// FlowController decides when to emit XON/XOFF and whether outbound
// transmission is allowed. It keeps two independent signals: the
// remote side pausing us, and us pausing the remote side.
type FlowController struct {
	enabled bool

	remotePaused bool // received XOFF, stop sending
	localPaused  bool // sent XOFF, remote should stop

	high int
	low  int
}

// NewFlowController creates a FlowController for a receive buffer of
// the given capacity. The pause threshold is 75% occupancy, the
// resume threshold 37.5%; the gap prevents chatter when occupancy
// hovers near a single boundary.
func NewFlowController(capacity int) *FlowController {
	high := capacity * 3 / 4
	low := capacity * 3 / 8
	// Tiny buffers round both fractions down to zero; keep the resume
	// threshold reachable and strictly below the pause threshold.
	if low < 1 {
		low = 1
	}
	if high <= low {
		high = low + 1
	}
	return &FlowController{
		enabled: true,
		high:    high,
		low:     low,
	}
}

// Enabled reports whether flow control is active.
func (f *FlowController) Enabled() bool {
	return f.enabled
}

// SetEnabled toggles flow control. Disabling clears any paused state
// and turns 0x11/0x13 back into ordinary payload.
func (f *FlowController) SetEnabled(enabled bool) {
	f.enabled = enabled
	if !enabled {
		f.remotePaused = false
		f.localPaused = false
	}
}

// Classify consumes b if it is a control symbol and updates the
// remote pause state accordingly. It reports whether the byte was
// consumed. With flow control disabled nothing is ever consumed.
func (f *FlowController) Classify(b byte) bool {
	if !f.enabled {
		return false
	}
	switch b {
	case XOFF:
		f.remotePaused = true
	case XON:
		f.remotePaused = false
	default:
		return false
	}
	return true
}

// TxBlocked reports whether the remote side has paused our
// transmission.
func (f *FlowController) TxBlocked() bool {
	return f.remotePaused
}

// Evaluate applies the hysteresis rule to the receive buffer
// occupancy and returns a control symbol to emit, if any. Each
// threshold crossing yields exactly one symbol.
func (f *FlowController) Evaluate(occupancy int) (byte, bool) {
	if !f.enabled {
		return 0, false
	}
	if occupancy > f.high && !f.localPaused {
		f.localPaused = true
		return XOFF, true
	}
	if occupancy < f.low && f.localPaused {
		f.localPaused = false
		return XON, true
	}
	return 0, false
}

// Reset clears both pause signals, leaving enablement unchanged.
func (f *FlowController) Reset() {
	f.remotePaused = false
	f.localPaused = false
}
