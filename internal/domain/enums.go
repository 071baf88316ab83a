package domain

// BroadcastType classifies what a broadcast announces.
type BroadcastType string

const (
	BroadcastTypeApproval     BroadcastType = "approval"
	BroadcastTypeVeto         BroadcastType = "veto"
	BroadcastTypeAnnouncement BroadcastType = "announcement"
	BroadcastTypePoll         BroadcastType = "poll"
	BroadcastTypeEmergency    BroadcastType = "emergency"
)

func (t BroadcastType) String() string { return string(t) }

func (t BroadcastType) IsValid() bool {
	switch t {
	case BroadcastTypeApproval, BroadcastTypeVeto, BroadcastTypeAnnouncement,
		BroadcastTypePoll, BroadcastTypeEmergency:
		return true
	}
	return false
}

// AllBroadcastTypes lists every broadcast type in display order.
func AllBroadcastTypes() []BroadcastType {
	return []BroadcastType{
		BroadcastTypeApproval,
		BroadcastTypeVeto,
		BroadcastTypeAnnouncement,
		BroadcastTypePoll,
		BroadcastTypeEmergency,
	}
}

// Priority orders broadcasts inside a feed.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Weight returns a sortable value, higher means more important.
func (p Priority) Weight() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Role is a governance role granted by the external authorization service.
type Role string

const (
	RoleSovereign Role = "sovereign"
	RoleCouncil   Role = "council"
	RoleObserver  Role = "observer"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	return r.Rank() > 0
}

// Rank is the position of the role in the hierarchy. Unknown roles rank 0.
func (r Role) Rank() int {
	switch r {
	case RoleSovereign:
		return 3
	case RoleCouncil:
		return 2
	case RoleObserver:
		return 1
	}
	return 0
}

// HighestRank returns the best rank among roles, or 0 when none is known.
func HighestRank(roles []Role) int {
	best := 0
	for _, r := range roles {
		if rank := r.Rank(); rank > best {
			best = rank
		}
	}
	return best
}
