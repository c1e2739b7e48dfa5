// Package csvimport turns a spreadsheet of exercise rows into one workout
// per calendar day.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fitcoach-backend-go/internal/models"
)

var (
	ErrMissingExerciseColumn = errors.New("csv has no exercise column")
	ErrInvalidDate           = errors.New("date must be YYYY-MM-DD, got")
)

const (
	colDate     = "date"
	colExercise = "exercise"
	colReps     = "reps"
	colSets     = "sets"
	colVideo    = "video"
)

var headerAliases = map[string]string{
	"date":         colDate,
	"dia":          colDate,
	"día":          colDate,
	"exercise":     colExercise,
	"ejercicio":    colExercise,
	"reps":         colReps,
	"repeticiones": colReps,
	"sets":         colSets,
	"series":       colSets,
	"video":        colVideo,
	"video_url":    colVideo,
}

// Day is the exercises of one date, in file order.
type Day struct {
	Date      string
	Exercises []models.Exercise
}

// Parse reads a header row followed by exercise rows. Headers are matched
// case-insensitively in English or Spanish. Rows without an exercise name
// are skipped, rows without a date fall on today and any other date must
// be YYYY-MM-DD. Days come back in the
// order their date first appears.
func Parse(r io.Reader, today string) ([]Day, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []Day{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header -> %w", err)
	}
	columns := map[string]int{}
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
		if canonical, ok := headerAliases[name]; ok {
			if _, seen := columns[canonical]; !seen {
				columns[canonical] = i
			}
		}
	}
	if _, ok := columns[colExercise]; !ok {
		return nil, ErrMissingExerciseColumn
	}

	field := func(record []string, col string) string {
		idx, ok := columns[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	days := []Day{}
	index := map[string]int{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row -> %w", err)
		}
		name := field(record, colExercise)
		if name == "" {
			continue
		}
		date := field(record, colDate)
		if date == "" {
			date = today
		} else if _, err := time.Parse(models.DateLayout, date); err != nil {
			line, _ := reader.FieldPos(columns[colDate])
			return nil, fmt.Errorf("line %d: %w %q", line, ErrInvalidDate, date)
		}
		exercise := models.Exercise{
			Name:     name,
			Reps:     field(record, colReps),
			Sets:     field(record, colSets),
			VideoURL: field(record, colVideo),
		}
		pos, ok := index[date]
		if !ok {
			pos = len(days)
			index[date] = pos
			days = append(days, Day{Date: date})
		}
		days[pos].Exercises = append(days[pos].Exercises, exercise)
	}
	return days, nil
}

// Labels returns the title format and notes used for imported workouts.
func Labels(lang string) (titleFormat, notes string) {
	if lang == "en" {
		return "Workout %s", "Imported from CSV"
	}
	return "Entreno %s", "Importado desde CSV"
}

var templates = map[string][][]string{
	"en": {
		{"date", "exercise", "reps", "sets", "video"},
		{"2026-02-24", "Squat", "8", "4", "https://youtube.com/watch?v=example1"},
		{"2026-02-24", "Bench press", "10", "3", ""},
		{"2026-02-24", "Deadlift", "6", "4", "https://drive.google.com/file/example"},
		{"2026-02-25", "Lunges", "12", "3", ""},
		{"2026-02-25", "Barbell row", "10", "4", ""},
	},
	"es": {
		{"dia", "ejercicio", "repeticiones", "series", "video"},
		{"2026-02-24", "Sentadilla", "8", "4", "https://youtube.com/watch?v=example1"},
		{"2026-02-24", "Press banca", "10", "3", ""},
		{"2026-02-24", "Peso muerto", "6", "4", "https://drive.google.com/file/example"},
		{"2026-02-25", "Zancadas", "12", "3", ""},
		{"2026-02-25", "Remo con barra", "10", "4", ""},
	},
}

// WriteTemplate writes a sample import file. Unknown languages get English.
func WriteTemplate(w io.Writer, lang string) error {
	rows, ok := templates[lang]
	if !ok {
		rows = templates["en"]
	}
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv template -> %w", err)
	}
	return nil
}
