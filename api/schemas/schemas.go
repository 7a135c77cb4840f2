// File: api/schemas/schemas.go
package schemas

// PortDirection defines which connection roles a port may fill.
type PortDirection string

const (
	DirectionInput         PortDirection = "input"
	DirectionOutput        PortDirection = "output"
	DirectionBidirectional PortDirection = "bidirectional"
)

// PortKind categorizes the physical or logical nature of a port.
type PortKind string

const (
	PortKindPower      PortKind = "power"
	PortKindData       PortKind = "data"
	PortKindSignal     PortKind = "signal"
	PortKindControl    PortKind = "control"
	PortKindMechanical PortKind = "mechanical"
	PortKindThermal    PortKind = "thermal"
	PortKindGeneric    PortKind = "generic"
)

// BlockStatus tracks a block through its implementation lifecycle.
type BlockStatus string

const (
	StatusPlaceholder BlockStatus = "placeholder"
	StatusPlanned     BlockStatus = "planned"
	StatusInWork      BlockStatus = "in_work"
	StatusImplemented BlockStatus = "implemented"
	StatusVerified    BlockStatus = "verified"
)

// LinkKind categorizes a block's external links. CAD links are the only
// kind the action plan builder reacts to.
type LinkKind string

const (
	LinkKindCAD LinkKind = "cad"
	LinkKindDoc LinkKind = "doc"
	LinkKindURL LinkKind = "url"
)

// Severity is used by notification sinks when surfacing summaries.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// ValidDirection reports whether d is one of the known port directions.
func ValidDirection(d PortDirection) bool {
	switch d {
	case DirectionInput, DirectionOutput, DirectionBidirectional:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known lifecycle statuses.
func ValidStatus(s BlockStatus) bool {
	switch s {
	case StatusPlaceholder, StatusPlanned, StatusInWork, StatusImplemented, StatusVerified:
		return true
	}
	return false
}
