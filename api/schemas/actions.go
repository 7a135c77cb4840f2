// File: api/schemas/actions.go
package schemas

// ActionType identifies one kind of synchronization instruction.
type ActionType string

const (
	ActionCreateBlock       ActionType = "create_block"
	ActionUpdateBlock       ActionType = "update_block"
	ActionDeleteBlock       ActionType = "delete_block"
	ActionMoveBlock         ActionType = "move_block"
	ActionCreatePort        ActionType = "create_port"
	ActionDeletePort        ActionType = "delete_port"
	ActionCreateConnection  ActionType = "create_connection"
	ActionDeleteConnection  ActionType = "delete_connection"
	ActionSyncCADProperties ActionType = "sync_cad_properties"
	ActionSaveDocument      ActionType = "save_document"
	ActionRefreshView       ActionType = "refresh_view"
	ActionShowWarning       ActionType = "show_warning"
	ActionShowError         ActionType = "show_error"
)

// TargetType identifies what kind of element an action operates on.
type TargetType string

const (
	TargetBlock      TargetType = "block"
	TargetPort       TargetType = "port"
	TargetConnection TargetType = "connection"
	TargetDocument   TargetType = "document"
)

// Action is one ordered synchronization instruction for an external
// executor. A naive executor that iterates the sorted plan in order
// never creates a connection before its endpoints exist.
type Action struct {
	Type        ActionType             `json:"action_type"`
	TargetID    string                 `json:"target_id"`
	TargetType  TargetType             `json:"target_type"`
	Description string                 `json:"description"`
	Params      map[string]interface{} `json:"params,omitempty"`
	Priority    int                    `json:"priority"`
	DependsOn   []string               `json:"depends_on,omitempty"`
}
