// internal/app/policy/selection/selection.go
package selection

import (
	"github.com/dalemusser/advisehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mode is the tagging strategy used to target students with a note or a
// manually logged meeting. The set is closed; anything else resolves to
// ModeUnknown and an empty selection.
type Mode string

const (
	ModeSingle   Mode = "single"
	ModeMultiple Mode = "multiple"
	ModeTeam     Mode = "team"
	ModeUnknown  Mode = ""
)

// ParseMode maps a raw form value onto a Mode.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeSingle, ModeMultiple, ModeTeam:
		return Mode(s)
	default:
		return ModeUnknown
	}
}

// UnknownName is used when a selected student id cannot be resolved
// against the supplied roster. An unresolvable id is not an error.
const UnknownName = "Unknown"

// Set is the resolved output of a tagging choice. It is transient: built
// fresh per user action and flattened onto whichever entity is being
// tagged, never stored on its own.
//
// StudentNames is parallel to StudentIDs.
type Set struct {
	StudentIDs   []primitive.ObjectID
	StudentNames []string
	TeamID       *primitive.ObjectID
	TeamName     string
}

// Empty reports whether the set selects nothing.
func (s Set) Empty() bool {
	return len(s.StudentIDs) == 0 && s.TeamID == nil
}

// Resolve projects a tagging mode plus the raw selections onto a Set.
//
//	single:   first selected id only; empty input yields the empty set
//	multiple: all ids, order preserved, duplicates kept (deduplication is
//	          the caller's responsibility)
//	team:     the team's full roster plus team id/name; an unknown team id
//	          yields the empty set
//
// Resolve is a total function over the supplied lists: unrecognized modes
// and unknown ids never produce an error, only empty results or the
// UnknownName placeholder.
func Resolve(mode Mode, selectedStudentIDs []primitive.ObjectID, selectedTeamID primitive.ObjectID, students []models.User, teams []models.Team) Set {
	names := make(map[primitive.ObjectID]string, len(students))
	for _, s := range students {
		names[s.ID] = s.FullName
	}

	nameOf := func(id primitive.ObjectID) string {
		if n, ok := names[id]; ok {
			return n
		}
		return UnknownName
	}

	switch mode {
	case ModeSingle:
		if len(selectedStudentIDs) == 0 {
			return Set{}
		}
		id := selectedStudentIDs[0]
		return Set{
			StudentIDs:   []primitive.ObjectID{id},
			StudentNames: []string{nameOf(id)},
		}

	case ModeMultiple:
		if len(selectedStudentIDs) == 0 {
			return Set{}
		}
		out := Set{
			StudentIDs:   make([]primitive.ObjectID, 0, len(selectedStudentIDs)),
			StudentNames: make([]string, 0, len(selectedStudentIDs)),
		}
		for _, id := range selectedStudentIDs {
			out.StudentIDs = append(out.StudentIDs, id)
			out.StudentNames = append(out.StudentNames, nameOf(id))
		}
		return out

	case ModeTeam:
		for _, t := range teams {
			if t.ID != selectedTeamID {
				continue
			}
			teamID := t.ID
			out := Set{
				StudentIDs:   make([]primitive.ObjectID, 0, len(t.StudentIDs)),
				StudentNames: make([]string, 0, len(t.StudentIDs)),
				TeamID:       &teamID,
				TeamName:     t.Name,
			}
			for _, id := range t.StudentIDs {
				out.StudentIDs = append(out.StudentIDs, id)
				out.StudentNames = append(out.StudentNames, nameOf(id))
			}
			return out
		}
		return Set{}

	default:
		return Set{}
	}
}
