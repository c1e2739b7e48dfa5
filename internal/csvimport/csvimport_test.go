package csvimport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroupsByDate(t *testing.T) {
	input := "date,exercise,reps,sets,video\n" +
		"2026-02-24,Squat,8,4,https://v/1\n" +
		"2026-02-25,Lunges,12,3,\n" +
		"2026-02-24,Bench press,10,3,\n" +
		"2026-02-25,Row,10,4,\n"

	days, err := Parse(strings.NewReader(input), "2026-03-01")
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, "2026-02-24", days[0].Date)
	require.Len(t, days[0].Exercises, 2)
	assert.Equal(t, "Squat", days[0].Exercises[0].Name)
	assert.Equal(t, "8", days[0].Exercises[0].Reps)
	assert.Equal(t, "4", days[0].Exercises[0].Sets)
	assert.Equal(t, "https://v/1", days[0].Exercises[0].VideoURL)
	assert.Equal(t, "Bench press", days[0].Exercises[1].Name)

	assert.Equal(t, "2026-02-25", days[1].Date)
	assert.Equal(t, []string{"Lunges", "Row"}, []string{days[1].Exercises[0].Name, days[1].Exercises[1].Name})
}

func TestParseSpanishHeadersBlankRowsAndToday(t *testing.T) {
	input := "\ufeff Dia , EJERCICIO ,Repeticiones,Series,Video\n" +
		",Sentadilla,8,4,\n" +
		"2026-02-24,  ,10,3,\n" +
		"2026-02-24,Peso muerto,6,4\n"

	days, err := Parse(strings.NewReader(input), "2026-03-01")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-03-01", days[0].Date)
	assert.Equal(t, "Sentadilla", days[0].Exercises[0].Name)
	require.Len(t, days[1].Exercises, 1)
	assert.Equal(t, "Peso muerto", days[1].Exercises[0].Name)
	assert.Equal(t, "", days[1].Exercises[0].VideoURL)
}

func TestParseEdgeCases(t *testing.T) {
	days, err := Parse(strings.NewReader(""), "2026-03-01")
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = Parse(strings.NewReader("date,reps\n2026-01-01,3\n"), "2026-03-01")
	require.ErrorIs(t, err, ErrMissingExerciseColumn)

	days, err = Parse(strings.NewReader("exercise\n"), "2026-03-01")
	require.NoError(t, err)
	assert.Empty(t, days)

	for _, bad := range []string{"24/02/2026", "not-a-date", "2026-02-30"} {
		_, err = Parse(strings.NewReader("date,exercise\n2026-02-24,Squat\n"+bad+",Row\n"), "2026-03-01")
		require.ErrorIs(t, err, ErrInvalidDate, bad)
		assert.Contains(t, err.Error(), "line 3")
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	for _, lang := range []string{"en", "es", "fr"} {
		var buf bytes.Buffer
		require.NoError(t, WriteTemplate(&buf, lang))

		days, err := Parse(&buf, "2026-03-01")
		require.NoError(t, err, lang)
		require.Len(t, days, 2, lang)
		assert.Len(t, days[0].Exercises, 3, lang)
		assert.Len(t, days[1].Exercises, 2, lang)
	}

	var es bytes.Buffer
	require.NoError(t, WriteTemplate(&es, "es"))
	assert.True(t, strings.HasPrefix(es.String(), "dia,ejercicio,repeticiones,series,video\n"))
}

func TestLabels(t *testing.T) {
	title, notes := Labels("en")
	assert.Equal(t, "Workout %s", title)
	assert.Equal(t, "Imported from CSV", notes)
	title, notes = Labels("es")
	assert.Equal(t, "Entreno %s", title)
	assert.Equal(t, "Importado desde CSV", notes)
}
