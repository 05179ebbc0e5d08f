package rotation

// Sink applies visual state for a rotation. Calls are made while the engine
// lock is held, so implementations must not call back into the engine.
type Sink interface {
	SetItemState(index int, state ItemState)
	SetIndicator(index int, active bool)
}

// SinkFuncs adapts plain functions to Sink. Nil functions are skipped.
type SinkFuncs struct {
	Item      func(index int, state ItemState)
	Indicator func(index int, active bool)
}

// SetItemState implements Sink.
func (funcs SinkFuncs) SetItemState(index int, state ItemState) {
	if funcs.Item != nil {
		funcs.Item(index, state)
	}
}

// SetIndicator implements Sink.
func (funcs SinkFuncs) SetIndicator(index int, active bool) {
	if funcs.Indicator != nil {
		funcs.Indicator(index, active)
	}
}
