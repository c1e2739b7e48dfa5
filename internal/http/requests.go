package httpapi

import (
	"fitcoach-backend-go/internal/models"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 128)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r PasswordChangeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(6, 128)),
	)
}

type SettingsRequest models.SettingsPatch

func (r SettingsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.WeightUnit, validation.In(anySlice(models.WeightUnits)...)),
		validation.Field(&r.HeightUnit, validation.In(anySlice(models.HeightUnits)...)),
		validation.Field(&r.Language, validation.In(anySlice(models.Languages)...)),
	)
}

type AthleteRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Sport    string `json:"sport"`
	Position string `json:"position"`
}

func (r AthleteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 128)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
	)
}

type WorkoutRequest struct {
	AthleteID string            `json:"athlete_id"`
	Date      string            `json:"date"`
	Title     string            `json:"title"`
	Exercises []models.Exercise `json:"exercises"`
	Notes     string            `json:"notes"`
}

func (r WorkoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AthleteID, validation.Required),
		validation.Field(&r.Date, validation.Required, validation.Date(models.DateLayout)),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Exercises, validation.By(exercisesNamed)),
	)
}

type TestRequest struct {
	AthleteID  string   `json:"athlete_id"`
	TestType   string   `json:"test_type"`
	TestName   string   `json:"test_name"`
	CustomName string   `json:"custom_name"`
	Value      *float64 `json:"value"`
	ValueLeft  *float64 `json:"value_left"`
	ValueRight *float64 `json:"value_right"`
	Unit       string   `json:"unit"`
	Date       string   `json:"date"`
	Notes      string   `json:"notes"`
}

func (r TestRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TestType, validation.Required),
		validation.Field(&r.TestName, validation.Required),
		validation.Field(&r.Value, validation.NotNil),
		validation.Field(&r.Unit, validation.Required),
		validation.Field(&r.Date, validation.Date(models.DateLayout)),
	)
}

func exercisesNamed(value interface{}) error {
	exercises, _ := value.([]models.Exercise)
	for _, e := range exercises {
		if err := validation.Validate(e.Name, validation.Required.Error("every exercise needs a name")); err != nil {
			return err
		}
	}
	return nil
}

func anySlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
