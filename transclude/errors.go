package transclude

import "fmt"

// DepthExceededError is raised when recursive template expansion passes
// the configured maximum depth (default 40).
type DepthExceededError struct {
	Depth int
	Max   int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("transclusion depth %d exceeds maximum %d", e.Depth, e.Max)
}

// NotImplementedError is raised by #invoke when no module-execution
// collaborator has been wired via WithInvoker.
type NotImplementedError struct {
	Module, Function string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("#invoke:%s|%s: no module-execution collaborator configured", e.Module, e.Function)
}
