package types

const (
	ClientStatusActive   = "Active"
	ClientStatusInactive = "Inactive"

	ProjectStatusOngoing   = "Ongoing"
	ProjectStatusCompleted = "Completed"
	ProjectStatusOnHold    = "OnHold"

	ModuleStatusNotStarted = "NotStarted"
	ModuleStatusInProgress = "InProgress"
	ModuleStatusCompleted  = "Completed"
)

func IsValidClientStatus(status string) bool {
	return status == ClientStatusActive || status == ClientStatusInactive
}

func IsValidProjectStatus(status string) bool {
	switch status {
	case ProjectStatusOngoing, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}

func IsValidModuleStatus(status string) bool {
	switch status {
	case ModuleStatusNotStarted, ModuleStatusInProgress, ModuleStatusCompleted:
		return true
	}
	return false
}
