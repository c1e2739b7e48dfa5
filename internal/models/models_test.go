package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseListScanKeepsOrder(t *testing.T) {
	var list ExerciseList
	require.NoError(t, list.Scan(`[{"name":"Squat","sets":"4"},{"name":"Bench","reps":"10","exercise_notes":"slow"}]`))
	require.Len(t, list, 2)
	assert.Equal(t, "Squat", list[0].Name)
	assert.Equal(t, "slow", list[1].ExerciseNotes)

	require.NoError(t, list.Scan(nil))
	assert.NotNil(t, list)
	assert.Empty(t, list)

	value, err := ExerciseList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestCompletionDataNullable(t *testing.T) {
	var data *CompletionData
	value, err := data.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	scanned := &CompletionData{}
	require.NoError(t, scanned.Scan([]byte(`{"exercise_results":[{"exercise_index":1,"name":"Row","total_sets":4,"completed_sets":3,"skipped_sets":1}]}`)))
	require.Len(t, scanned.ExerciseResults, 1)
	assert.Equal(t, 3, scanned.ExerciseResults[0].CompletedSets)

	assert.Error(t, scanned.Scan(42))
}

func TestWorkoutPatchApply(t *testing.T) {
	w := Workout{Title: "Legs", Notes: "n", Exercises: ExerciseList{{Name: "Squat"}, {Name: "Lunge"}}}
	assert.True(t, WorkoutPatch{}.IsEmpty())

	done := true
	exercises := []Exercise{{Name: "Deadlift"}}
	obs := "felt strong"
	patch := WorkoutPatch{Completed: &done, Exercises: &exercises, Observations: &obs}
	require.False(t, patch.IsEmpty())
	patch.Apply(&w)

	assert.Equal(t, "Legs", w.Title)
	assert.True(t, w.Completed)
	assert.Equal(t, ExerciseList{{Name: "Deadlift"}}, w.Exercises)
	require.NotNil(t, w.Observations)
	assert.Equal(t, "felt strong", *w.Observations)

	exercises[0].Name = "mutated"
	assert.Equal(t, "Deadlift", w.Exercises[0].Name)
}

func TestTestPatchApply(t *testing.T) {
	pt := PhysicalTest{Value: 100, Unit: "kg"}
	left := 48.5
	TestPatch{ValueLeft: &left}.Apply(&pt)
	assert.Equal(t, 100.0, pt.Value)
	require.NotNil(t, pt.ValueLeft)
	assert.Equal(t, 48.5, *pt.ValueLeft)
	assert.Nil(t, pt.ValueRight)
}

func TestUserIsAthlete(t *testing.T) {
	assert.True(t, User{Role: RoleAthlete}.IsAthlete())
	assert.False(t, User{Role: RoleTrainer}.IsAthlete())
	assert.False(t, User{}.IsAthlete())
}
