package domain

import (
	"strings"

	"github.com/google/uuid"
)

// AudienceKind tags the variant held by an AudienceRule.
type AudienceKind int

const (
	// AudienceUnknown is any targeting string that failed to parse. It matches nobody.
	AudienceUnknown AudienceKind = iota
	AudienceAll
	AudienceCircle
	AudienceRole
)

func (k AudienceKind) String() string {
	switch k {
	case AudienceAll:
		return "all"
	case AudienceCircle:
		return "circle"
	case AudienceRole:
		return "role"
	}
	return "unknown"
}

const (
	audienceAll          = "all"
	audienceCirclePrefix = "circle:"
	audienceRolePrefix   = "role:"
)

// AudienceRule is the parsed form of a broadcast's targeting string.
// Only the field belonging to Kind is meaningful.
type AudienceRule struct {
	Kind     AudienceKind
	CircleID uuid.UUID
	Role     Role
	// Raw keeps the original input for Unknown rules so it can be logged.
	Raw string
}

// AudienceEveryone targets every viewer.
func AudienceEveryone() AudienceRule { return AudienceRule{Kind: AudienceAll} }

// AudienceForCircle targets members of one circle.
func AudienceForCircle(id uuid.UUID) AudienceRule {
	return AudienceRule{Kind: AudienceCircle, CircleID: id}
}

// AudienceForRole targets viewers ranked at or above role.
func AudienceForRole(role Role) AudienceRule {
	return AudienceRule{Kind: AudienceRole, Role: role}
}

// ParseAudience parses the case-sensitive grammar
// `all` | `circle:<uuid>` | `role:<sovereign|council|observer>`.
// Every other input yields an AudienceUnknown rule.
func ParseAudience(raw string) AudienceRule {
	switch {
	case raw == audienceAll:
		return AudienceEveryone()

	case strings.HasPrefix(raw, audienceCirclePrefix):
		idStr := strings.TrimPrefix(raw, audienceCirclePrefix)
		// uuid.Parse also accepts urn/braced forms; only the canonical 36-char form is allowed.
		if len(idStr) != 36 {
			break
		}
		id, err := uuid.Parse(idStr)
		if err != nil || id == uuid.Nil {
			break
		}
		return AudienceForCircle(id)

	case strings.HasPrefix(raw, audienceRolePrefix):
		role := Role(strings.TrimPrefix(raw, audienceRolePrefix))
		if !role.IsValid() {
			break
		}
		return AudienceForRole(role)
	}

	return AudienceRule{Kind: AudienceUnknown, Raw: raw}
}

// IsKnown reports whether the rule parsed into a concrete variant.
func (r AudienceRule) IsKnown() bool { return r.Kind != AudienceUnknown }

// String renders the rule back into its wire form.
func (r AudienceRule) String() string {
	switch r.Kind {
	case AudienceAll:
		return audienceAll
	case AudienceCircle:
		return audienceCirclePrefix + r.CircleID.String()
	case AudienceRole:
		return audienceRolePrefix + string(r.Role)
	}
	return r.Raw
}

// Viewer is the identity a feed is built for. Roles and Circles are only
// authoritative when the matching Loaded flag is set; otherwise the audience
// resolver fetches them from the membership service.
type Viewer struct {
	ID            uuid.UUID
	Roles         []Role
	Circles       []uuid.UUID
	RolesLoaded   bool
	CirclesLoaded bool
}

// NewViewer returns a viewer whose memberships are still to be looked up.
func NewViewer(id uuid.UUID) *Viewer {
	return &Viewer{ID: id}
}

// InCircle reports whether the loaded circle set contains id.
func (v *Viewer) InCircle(id uuid.UUID) bool {
	for _, c := range v.Circles {
		if c == id {
			return true
		}
	}
	return false
}
