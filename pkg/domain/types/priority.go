package types

// ActionPriority represents how urgently a recommended action applies.
// Actions attached to a worst-bucket tenet are immediate, actions attached
// to a middle-bucket tenet are recommended.
type ActionPriority string

const (
	ActionPriorityImmediate   ActionPriority = "immediate"
	ActionPriorityRecommended ActionPriority = "recommended"
)

// IsValid checks if the action priority is valid
func (p ActionPriority) IsValid() bool {
	switch p {
	case ActionPriorityImmediate, ActionPriorityRecommended:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action priority
func (p ActionPriority) String() string {
	return string(p)
}
