package hnsw

import "fmt"

// InvalidParametersError indicates a contract violation detected by the
// index itself: a level exceeding MaxLevel, an operation requiring an entry
// point on a graph that has none, or a non-finite distance returned by the
// oracle.
type InvalidParametersError struct {
	Reason string
}

func (e *InvalidParametersError) Error() string {
	return fmt.Sprintf("invalid parameters: %s", e.Reason)
}

// DuplicateNodeError indicates an attempt to insert a node id that already
// exists in the graph.
type DuplicateNodeError struct {
	Node int
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("node %d already exists in the graph", e.Node)
}

// GraphInvariantError indicates an internal consistency failure, such as a
// node expected to exist during commit being absent. It signals a bug in the
// index rather than caller misuse and should be treated as non-recoverable.
type GraphInvariantError struct {
	Message string
}

func (e *GraphInvariantError) Error() string {
	return fmt.Sprintf("graph invariant violated: %s", e.Message)
}

func invalidParametersf(format string, args ...any) error {
	return &InvalidParametersError{Reason: fmt.Sprintf(format, args...)}
}

func graphInvariantf(format string, args ...any) error {
	return &GraphInvariantError{Message: fmt.Sprintf(format, args...)}
}
