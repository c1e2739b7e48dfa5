package services

import "fitcoach-backend-go/internal/models"

type Action string

const (
	ActAthleteCreate Action = "athlete.create"
	ActAthleteList   Action = "athlete.list"
	ActAthleteRead   Action = "athlete.read"
	ActAthleteDelete Action = "athlete.delete"

	ActWorkoutCreate Action = "workout.create"
	ActWorkoutRead   Action = "workout.read"
	ActWorkoutUpdate Action = "workout.update"
	ActWorkoutDelete Action = "workout.delete"

	ActTestCreate  Action = "test.create"
	ActTestList    Action = "test.list"
	ActTestHistory Action = "test.history"
	ActTestUpdate  Action = "test.update"
	ActTestDelete  Action = "test.delete"

	ActAnalyticsRead Action = "analytics.read"
)

// Resource carries the ownership facts a rule needs. Fields that do not
// apply to an action are left empty.
type Resource struct {
	// AthleteID is the athlete the action targets.
	AthleteID string
	// AthleteTrainerID is the trainer whose roster AthleteID is on.
	AthleteTrainerID string
	// OwnerTrainerID is the trainer that created the record (workouts).
	OwnerTrainerID string
}

// Decision is the outcome of a policy check. The zero value denies.
type Decision struct {
	Allowed bool
	Kind    Kind
	Message string
}

func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return ServiceError{Kind: d.Kind, Message: d.Message}
}

var allow = Decision{Allowed: true}

func forbid(msg string) Decision {
	return Decision{Kind: KindForbidden, Message: msg}
}

func hide(msg string) Decision {
	return Decision{Kind: KindNotFound, Message: msg}
}

// Policy decides whether a caller may perform an action. It does no I/O.
//
// Deletes always require ownership. With StrictOwnership off, workout
// updates and test history/update accept any authenticated caller and a
// trainer may filter tests or analytics by any athlete id. Turning it on
// applies the roster rules to those actions as well.
type Policy struct {
	StrictOwnership bool
}

func (p Policy) Authorize(caller Identity, action Action, res Resource) Decision {
	if caller.UserID == "" || !caller.Role.Valid() {
		return Decision{Kind: KindUnauthenticated, Message: "Not authenticated"}
	}
	trainer := caller.Role == models.RoleTrainer
	self := res.AthleteID != "" && res.AthleteID == caller.UserID
	onRoster := trainer && res.AthleteTrainerID != "" && res.AthleteTrainerID == caller.UserID

	switch action {
	case ActAthleteCreate:
		if !trainer {
			return forbid("Only trainers can manage athletes")
		}
		return allow

	case ActAthleteDelete:
		if !trainer {
			return forbid("Only trainers can manage athletes")
		}
		if !onRoster {
			return hide("Athlete not found")
		}
		return allow

	case ActAthleteList:
		return allow

	case ActAthleteRead:
		if onRoster || (!trainer && self) {
			return allow
		}
		return forbid("Not authorized")

	case ActWorkoutCreate:
		if !trainer {
			return forbid("Only trainers can create workouts")
		}
		if !onRoster {
			return hide("Athlete not found")
		}
		return allow

	case ActWorkoutRead:
		if p.canReadWorkout(caller, res) {
			return allow
		}
		return forbid("Not authorized")

	case ActWorkoutUpdate:
		if !p.StrictOwnership || p.canReadWorkout(caller, res) {
			return allow
		}
		return forbid("Not authorized")

	case ActWorkoutDelete:
		if !trainer {
			return forbid("Only trainers can delete workouts")
		}
		if res.OwnerTrainerID == "" || res.OwnerTrainerID != caller.UserID {
			return hide("Workout not found")
		}
		return allow

	case ActTestCreate:
		if trainer {
			if !onRoster {
				return hide("Athlete not found")
			}
			return allow
		}
		if !self {
			return forbid("Not authorized")
		}
		return allow

	case ActTestList:
		if !trainer || res.AthleteID == "" || !p.StrictOwnership || onRoster {
			return allow
		}
		return forbid("Not authorized")

	case ActTestHistory, ActTestUpdate:
		if !p.StrictOwnership || self || onRoster {
			return allow
		}
		return forbid("Not authorized")

	case ActTestDelete:
		if self || onRoster {
			return allow
		}
		return forbid("Not authorized")

	case ActAnalyticsRead:
		if !trainer || res.AthleteID == "" || !p.StrictOwnership || onRoster {
			return allow
		}
		return forbid("Not authorized")
	}
	return forbid("Not authorized")
}

func (p Policy) canReadWorkout(caller Identity, res Resource) bool {
	if caller.Role == models.RoleTrainer {
		return res.OwnerTrainerID == caller.UserID
	}
	return res.AthleteID == caller.UserID
}
