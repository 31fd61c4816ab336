package store

// Actions rebuilds the action sequence leading to handle by following the
// predecessor links back to the initial frame, returned in forward order.
func (records *Records[StateType, ActionType]) Actions(handle Handle) []ActionType {
	var actions []ActionType
	current := records.Get(handle)
	for current.HasAction {
		actions = append(actions, current.Action)
		current = records.Get(current.Predecessor)
	}
	// reverse path
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	return actions
}
