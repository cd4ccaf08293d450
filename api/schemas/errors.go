package schemas

import "errors"

// Error kinds shared by the engine boundary, the result sources and the LLM
// collaborators. Callers wrap them with fmt.Errorf("...: %w") and match with errors.Is.
var (
	// ErrInvalidArgument marks malformed input rejected at a boundary, such as an
	// unknown sort key or an out-of-range risk score in a data file.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned by a ResultSource when the requested id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrRemoteCallFailed covers network, timeout and model errors from an LLM call.
	ErrRemoteCallFailed = errors.New("remote call failed")
	// ErrSchemaValidationFailed marks collaborator input or output that does not
	// match its declared shape.
	ErrSchemaValidationFailed = errors.New("schema validation failed")
)
