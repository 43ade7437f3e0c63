// AngelaMos | 2026
// visibility.go

package event

import (
	"strings"
)

// Viewer is the identity an event is being shown to.
type Viewer struct {
	UserID       string
	UniversityID string
}

// CanView reports whether viewer may see e. Public events are visible to
// everyone, private events to the same university, and RSO events to
// members of that RSO.
func CanView(e *Event, viewer Viewer, memberRSOs map[string]struct{}) bool {
	switch e.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityPrivate:
		return e.UniversityID != "" && e.UniversityID == viewer.UniversityID
	case VisibilityRSO:
		if e.RSOID == nil {
			return false
		}
		_, ok := memberRSOs[*e.RSOID]
		return ok
	default:
		return false
	}
}

// FilterVisible keeps the events viewer may see, dropping repeated ids
// and preserving the order of first occurrence.
func FilterVisible(events []Event, viewer Viewer, memberRSOIDs []string) []Event {
	members := memberSet(memberRSOIDs)
	seen := make(map[string]struct{}, len(events))
	out := make([]Event, 0, len(events))

	for i := range events {
		e := &events[i]
		if _, dup := seen[e.ID]; dup {
			continue
		}
		if !CanView(e, viewer, members) {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, *e)
	}

	return out
}

func memberSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// NormalizeVisibility lower-cases v and reports whether it is known.
func NormalizeVisibility(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityRSO:
		return v, true
	}
	return v, false
}
