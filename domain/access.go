package domain

// Capability is the action being authorized against a task.
type Capability string

const (
	CapabilityRead         Capability = "read"
	CapabilityUpdate       Capability = "update"
	CapabilityDelete       Capability = "delete"
	CapabilityManageGrants Capability = "manage_grants"
)

// Allows reports whether the acting user may exercise cap on the task.
// grant is the actor's grant on that task, nil when none exists. It is
// ignored for Delete and ManageGrants: those belong to the creator alone,
// and no grant can substitute for them.
func Allows(actorID string, task *Task, grant *Grant, cap Capability) bool {
	if task == nil || actorID == "" {
		return false
	}
	if actorID == task.CreatorID {
		return true
	}
	if grant == nil || grant.TaskID != task.ID || grant.UserID != actorID {
		return false
	}
	switch cap {
	case CapabilityRead:
		return grant.CanRead
	case CapabilityUpdate:
		return grant.CanUpdate
	default:
		return false
	}
}

// AllowsGrantMutation reports whether the acting user may update or
// revoke an existing grant. This is keyed on grant ownership, not on
// current task ownership: the two coincide at grant creation but are
// tracked independently afterwards.
func AllowsGrantMutation(actorID string, grant *Grant) bool {
	return grant != nil && actorID != "" && actorID == grant.OwnerID
}

// NormalizedGrantFlags applies the creation-time rule that an update
// grant always carries read. Grant updates write flags verbatim and do
// not go through this.
func NormalizedGrantFlags(canRead, canUpdate bool) (bool, bool) {
	if canUpdate {
		return true, true
	}
	return canRead, false
}
