// File: api/schemas/errors.go
package schemas

import "fmt"

// ErrorCode is the closed enumeration of validation failure codes.
// Callers decide which codes block a save and which are advisory.
type ErrorCode string

const (
	ErrDuplicateBlockID            ErrorCode = "duplicate_block_id"
	ErrEmptyBlockName              ErrorCode = "empty_block_name"
	ErrDuplicatePortID             ErrorCode = "duplicate_port_id"
	ErrMissingSourceBlock          ErrorCode = "missing_source_block"
	ErrMissingTargetBlock          ErrorCode = "missing_target_block"
	ErrMissingSourcePort           ErrorCode = "missing_source_port"
	ErrMissingTargetPort           ErrorCode = "missing_target_port"
	ErrSelfConnection              ErrorCode = "self_connection"
	ErrDuplicateConnection         ErrorCode = "duplicate_connection"
	ErrInvalidConnectionDirection  ErrorCode = "invalid_connection_direction"
	ErrCycleDetected               ErrorCode = "cycle_detected"
	ErrDuplicateGroupID            ErrorCode = "duplicate_group_id"
	ErrInvalidGroupBlockReference  ErrorCode = "invalid_group_block_reference"
	ErrInvalidGroupParentReference ErrorCode = "invalid_group_parent_reference"
	ErrGroupBlockIDCollision       ErrorCode = "group_block_id_collision"
	ErrCircularGroupParent         ErrorCode = "circular_group_parent"
)

// ValidationError describes one integrity violation. It carries enough
// context to locate the offending element without re-scanning the graph.
type ValidationError struct {
	Code         ErrorCode              `json:"code"`
	Message      string                 `json:"message"`
	BlockID      string                 `json:"block_id,omitempty"`
	PortID       string                 `json:"port_id,omitempty"`
	ConnectionID string                 `json:"connection_id,omitempty"`
	GroupID      string                 `json:"group_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// String renders the error for notification sinks and CLI output.
func (e ValidationError) String() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
