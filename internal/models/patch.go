package models

// Patch types carry optional fields for partial updates. A nil field is left
// untouched; Apply copies every non-nil field onto the stored record.

type ProfilePatch struct {
	Name     *string `json:"name"`
	Sport    *string `json:"sport"`
	Position *string `json:"position"`
}

func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Sport == nil && p.Position == nil
}

func (p ProfilePatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Sport != nil {
		u.Sport = *p.Sport
	}
	if p.Position != nil {
		u.Position = *p.Position
	}
}

type SettingsPatch struct {
	NotificationsEnabled  *bool   `json:"notifications_enabled"`
	NotificationsWorkouts *bool   `json:"notifications_workouts"`
	NotificationsTests    *bool   `json:"notifications_tests"`
	WeightUnit            *string `json:"weight_unit"`
	HeightUnit            *string `json:"height_unit"`
	Language              *string `json:"language"`
}

func (p SettingsPatch) IsEmpty() bool {
	return p.NotificationsEnabled == nil && p.NotificationsWorkouts == nil &&
		p.NotificationsTests == nil && p.WeightUnit == nil &&
		p.HeightUnit == nil && p.Language == nil
}

func (p SettingsPatch) Apply(s *Settings) {
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.NotificationsWorkouts != nil {
		s.NotificationsWorkouts = *p.NotificationsWorkouts
	}
	if p.NotificationsTests != nil {
		s.NotificationsTests = *p.NotificationsTests
	}
	if p.WeightUnit != nil {
		s.WeightUnit = *p.WeightUnit
	}
	if p.HeightUnit != nil {
		s.HeightUnit = *p.HeightUnit
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
}

// WorkoutPatch replaces Exercises wholesale when set.
type WorkoutPatch struct {
	Title          *string         `json:"title"`
	Exercises      *[]Exercise     `json:"exercises"`
	Notes          *string         `json:"notes"`
	Completed      *bool           `json:"completed"`
	CompletionData *CompletionData `json:"completion_data"`
	Observations   *string         `json:"observations"`
}

func (p WorkoutPatch) IsEmpty() bool {
	return p.Title == nil && p.Exercises == nil && p.Notes == nil &&
		p.Completed == nil && p.CompletionData == nil && p.Observations == nil
}

func (p WorkoutPatch) Apply(w *Workout) {
	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.Exercises != nil {
		w.Exercises = append(ExerciseList{}, (*p.Exercises)...)
	}
	if p.Notes != nil {
		w.Notes = *p.Notes
	}
	if p.Completed != nil {
		w.Completed = *p.Completed
	}
	if p.CompletionData != nil {
		data := *p.CompletionData
		w.CompletionData = &data
	}
	if p.Observations != nil {
		value := *p.Observations
		w.Observations = &value
	}
}

type TestPatch struct {
	Value      *float64 `json:"value"`
	Unit       *string  `json:"unit"`
	Notes      *string  `json:"notes"`
	ValueLeft  *float64 `json:"value_left"`
	ValueRight *float64 `json:"value_right"`
}

func (p TestPatch) IsEmpty() bool {
	return p.Value == nil && p.Unit == nil && p.Notes == nil &&
		p.ValueLeft == nil && p.ValueRight == nil
}

func (p TestPatch) Apply(t *PhysicalTest) {
	if p.Value != nil {
		t.Value = *p.Value
	}
	if p.Unit != nil {
		t.Unit = *p.Unit
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.ValueLeft != nil {
		value := *p.ValueLeft
		t.ValueLeft = &value
	}
	if p.ValueRight != nil {
		value := *p.ValueRight
		t.ValueRight = &value
	}
}
