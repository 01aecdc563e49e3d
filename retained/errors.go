package retained

import (
	"errors"
	"fmt"
)

// Errors reported by the widget core. None of them escape DispatchEvent or
// Draw: they are recovered where they happen and passed to the Gui error
// handler and the Gui logger.
var (
	// ErrDanglingLayoutReference is reported when a layout expression refers
	// to a widget that was removed from the tree. The term resolves to 0.
	ErrDanglingLayoutReference = errors.New("dangling layout reference")

	// ErrLayoutCycle is reported when resolving an expression re-enters
	// itself. The re-entered term resolves to 0.
	ErrLayoutCycle = errors.New("layout expression cycle")

	// ErrInvalidHierarchy is returned when an operation would make a widget
	// its own ancestor.
	ErrInvalidHierarchy = errors.New("invalid hierarchy operation")

	// ErrFocusScopeViolation marks a focus request for a widget whose
	// isolated scope was not active. The scope is activated first and the
	// event is only logged at debug level.
	ErrFocusScopeViolation = errors.New("focus scope violation")

	// ErrIndexOutOfRange is returned by index based container operations.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrVetoed is returned when a callback vetoed a state change.
	ErrVetoed = errors.New("vetoed")

	// ErrCallbackPanic wraps a panic raised inside a widget callback.
	ErrCallbackPanic = errors.New("callback panicked")
)

// reportError logs err and forwards it to the error handler of the Gui that
// w belongs to, if any.
func reportError(w *WidgetBase, err error) {
	if w == nil {
		detachedLogger.Warn("recovered", "err", err)
		return
	}
	w.log().Warn("recovered", "widget", w.name, "err", err)
	if g := w.gui(); g != nil && g.onError != nil {
		g.onError(err)
	}
}

// guard runs fn and converts a panic into ErrCallbackPanic.
func guard(w *WidgetBase, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			reportError(w, fmt.Errorf("%w: %v", ErrCallbackPanic, r))
		}
	}()
	fn()
}
