package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Role string

const (
	RoleTrainer Role = "trainer"
	RoleAthlete Role = "athlete"
)

func (r Role) Valid() bool {
	return r == RoleTrainer || r == RoleAthlete
}

// DateLayout is the calendar-date format used for workout and test dates.
const DateLayout = "2006-01-02"

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Role         Role      `db:"role"`
	TrainerID    *string   `db:"trainer_id"`
	Sport        string    `db:"sport"`
	Position     string    `db:"position"`
	CreatedAt    time.Time `db:"created_at"`
}

func (u User) IsAthlete() bool { return u.Role == RoleAthlete }

type Settings struct {
	UserID                string `db:"user_id"`
	NotificationsEnabled  bool   `db:"notifications_enabled"`
	NotificationsWorkouts bool   `db:"notifications_workouts"`
	NotificationsTests    bool   `db:"notifications_tests"`
	WeightUnit            string `db:"weight_unit"`
	HeightUnit            string `db:"height_unit"`
	Language              string `db:"language"`
}

var (
	WeightUnits = []string{"kg", "lb"}
	HeightUnits = []string{"cm", "ft"}
	Languages   = []string{"es", "en"}
)

func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:                userID,
		NotificationsEnabled:  true,
		NotificationsWorkouts: true,
		NotificationsTests:    true,
		WeightUnit:            "kg",
		HeightUnit:            "cm",
		Language:              "es",
	}
}

type Exercise struct {
	Name          string `json:"name"`
	Sets          string `json:"sets"`
	Reps          string `json:"reps"`
	Weight        string `json:"weight"`
	Rest          string `json:"rest"`
	VideoURL      string `json:"video_url"`
	ExerciseNotes string `json:"exercise_notes"`
}

// ExerciseList is stored as a JSON array column.
type ExerciseList []Exercise

func (l ExerciseList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]Exercise(l))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (l *ExerciseList) Scan(src any) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		*l = ExerciseList{}
		return nil
	}
	var items []Exercise
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	if items == nil {
		items = []Exercise{}
	}
	*l = items
	return nil
}

type ExerciseResult struct {
	ExerciseIndex int    `json:"exercise_index"`
	Name          string `json:"name"`
	TotalSets     int    `json:"total_sets"`
	CompletedSets int    `json:"completed_sets"`
	SkippedSets   int    `json:"skipped_sets"`
}

// CompletionData records how an athlete got through a workout. It is stored
// as a nullable JSON column.
type CompletionData struct {
	ExerciseResults []ExerciseResult `json:"exercise_results"`
}

func (c *CompletionData) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (c *CompletionData) Scan(src any) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, c)
}

func jsonBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	return nil, errors.New("unsupported json column type")
}

type Workout struct {
	ID             string          `db:"id" json:"id"`
	TrainerID      string          `db:"trainer_id" json:"trainer_id"`
	AthleteID      string          `db:"athlete_id" json:"athlete_id"`
	Date           string          `db:"date" json:"date"`
	Title          string          `db:"title" json:"title"`
	Exercises      ExerciseList    `db:"exercises" json:"exercises"`
	Notes          string          `db:"notes" json:"notes"`
	Completed      bool            `db:"completed" json:"completed"`
	CompletionData *CompletionData `db:"completion_data" json:"completion_data"`
	Observations   *string         `db:"observations" json:"observations"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

type PhysicalTest struct {
	ID         string    `db:"id" json:"id"`
	AthleteID  string    `db:"athlete_id" json:"athlete_id"`
	CreatedBy  string    `db:"created_by" json:"created_by"`
	TestType   string    `db:"test_type" json:"test_type"`
	TestName   string    `db:"test_name" json:"test_name"`
	CustomName string    `db:"custom_name" json:"custom_name"`
	Value      float64   `db:"value" json:"value"`
	ValueLeft  *float64  `db:"value_left" json:"value_left"`
	ValueRight *float64  `db:"value_right" json:"value_right"`
	Unit       string    `db:"unit" json:"unit"`
	Date       string    `db:"date" json:"date"`
	Notes      string    `db:"notes" json:"notes"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type MediaAsset struct {
	ID          string    `db:"id"`
	OwnerUserID string    `db:"owner_user_id"`
	StoragePath string    `db:"storage_path"`
	Filename    string    `db:"filename"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	Sha256      string    `db:"sha256"`
	CreatedAt   time.Time `db:"created_at"`
}
