package services

import (
	"context"
	"errors"
	"time"

	"fitcoach-backend-go/internal/models"
	"fitcoach-backend-go/internal/store"

	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	ListAthletes(ctx context.Context, trainerID string) ([]models.User, error)
	UpdateProfile(ctx context.Context, u models.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	DeleteAthlete(ctx context.Context, id, trainerID string) error
}

type SettingsRepository interface {
	Get(ctx context.Context, userID string) (models.Settings, error)
	Insert(ctx context.Context, row models.Settings) error
	Update(ctx context.Context, row models.Settings) error
	Delete(ctx context.Context, userID string) error
}

type WorkoutRepository interface {
	Create(ctx context.Context, w *models.Workout) error
	Get(ctx context.Context, id string) (models.Workout, error)
	List(ctx context.Context, f store.WorkoutFilter) ([]models.Workout, error)
	Update(ctx context.Context, w models.Workout) error
	Delete(ctx context.Context, id, trainerID string) error
	DeleteByAthlete(ctx context.Context, athleteID string) (int64, error)
}

type TestRepository interface {
	Create(ctx context.Context, t *models.PhysicalTest) error
	Get(ctx context.Context, id string) (models.PhysicalTest, error)
	List(ctx context.Context, f store.TestFilter) ([]models.PhysicalTest, error)
	History(ctx context.Context, athleteID, testName string) ([]models.PhysicalTest, error)
	Update(ctx context.Context, t models.PhysicalTest) error
	Delete(ctx context.Context, id string) error
	DeleteByAthlete(ctx context.Context, athleteID string) (int64, error)
}

type MediaRepository interface {
	Create(ctx context.Context, a *models.MediaAsset) error
	GetByPath(ctx context.Context, storagePath string) (models.MediaAsset, error)
	Delete(ctx context.Context, id string) error
}

// Recorder receives domain events for metrics.
type Recorder interface {
	Login(success bool)
	WorkoutsCreated(source string, n int)
	TestRecorded(testType string)
	FileUploaded(contentType string, size int64)
}

type nopRecorder struct{}

func (nopRecorder) Login(bool)                  {}
func (nopRecorder) WorkoutsCreated(string, int) {}
func (nopRecorder) TestRecorded(string)         {}
func (nopRecorder) FileUploaded(string, int64)  {}

type Options struct {
	StrictOwnership bool
	MediaRoot       string
	MaxUploadBytes  int64
	Now             func() time.Time
	Log             *zap.Logger
	Events          Recorder
}

// Services is the set of use cases the API exposes.
type Services struct {
	Tokens    TokenService
	Policy    Policy
	Accounts  *AccountService
	Settings  *SettingsService
	Athletes  *AthleteService
	Workouts  *WorkoutService
	Tests     *TestService
	Analytics *AnalyticsService
	Media     *MediaService
}

type deps struct {
	users    UserRepository
	settings SettingsRepository
	workouts WorkoutRepository
	tests    TestRepository
	media    MediaRepository
	tokens   TokenService
	policy   Policy
	now      func() time.Time
	log      *zap.Logger
	events   Recorder
}

func New(st *store.Store, tokens TokenService, opts Options) *Services {
	d := &deps{
		users:    st.Users,
		settings: st.Settings,
		workouts: st.Workouts,
		tests:    st.Tests,
		media:    st.Media,
		tokens:   tokens,
		policy:   Policy{StrictOwnership: opts.StrictOwnership},
		now:      opts.Now,
		log:      opts.Log,
		events:   opts.Events,
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}
	if d.events == nil {
		d.events = nopRecorder{}
	}
	if tokens.Now == nil {
		d.tokens.Now = d.now
	}
	settings := &SettingsService{deps: d}
	return &Services{
		Tokens:    d.tokens,
		Policy:    d.policy,
		Accounts:  &AccountService{deps: d, prefs: settings},
		Settings:  settings,
		Athletes:  &AthleteService{deps: d},
		Workouts:  &WorkoutService{deps: d, prefs: settings},
		Tests:     &TestService{deps: d},
		Analytics: &AnalyticsService{deps: d},
		Media:     &MediaService{deps: d, root: opts.MediaRoot, maxBytes: opts.MaxUploadBytes},
	}
}

func (d *deps) today() string {
	return d.now().UTC().Format(models.DateLayout)
}

// athleteResource describes athleteID for the policy. An unknown id, or one
// that is not an athlete, yields a resource on nobody's roster.
func (d *deps) athleteResource(ctx context.Context, athleteID string) (Resource, error) {
	res := Resource{AthleteID: athleteID}
	if athleteID == "" {
		return res, nil
	}
	u, err := d.users.GetByID(ctx, athleteID)
	if errors.Is(err, store.ErrNotFound) {
		return res, nil
	}
	if err != nil {
		return res, WrapError(err, "load athlete")
	}
	if u.IsAthlete() && u.TrainerID != nil {
		res.AthleteTrainerID = *u.TrainerID
	}
	return res, nil
}
