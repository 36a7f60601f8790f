package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/db"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/repository"
)

type planService struct {
	uow     db.UnitOfWork
	plans   repository.PlanRepo
	records repository.RunRecordRepo
	scores  repository.ScoreRepo
	prefs   repository.PreferencesRepo
	log     zerolog.Logger
	nowFunc func() time.Time
}

// NewPlanService wires the collaborator surface: plan import, synced
// runs, scores, and preferences.
func NewPlanService(
	uow db.UnitOfWork,
	plans repository.PlanRepo,
	records repository.RunRecordRepo,
	scores repository.ScoreRepo,
	prefs repository.PreferencesRepo,
	log zerolog.Logger,
) PlanService {
	return &planService{
		uow:     uow,
		plans:   plans,
		records: records,
		scores:  scores,
		prefs:   prefs,
		log:     log,
		nowFunc: time.Now,
	}
}

// planFile is the on-disk JSON shape of an importable training plan.
type planFile struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"` // YYYY-MM-DD
	Weeks     []struct {
		Days []struct {
			Type     string  `json:"type"`
			Label    string  `json:"label"`
			Distance float64 `json:"distance"`
			Note     string  `json:"note"`
		} `json:"days"`
	} `json:"weeks"`
}

// ImportPlan loads a plan template from a JSON file, stores it, and
// makes it the active plan.
func (s *planService) ImportPlan(ctx context.Context, filePath string) (*domain.Plan, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	var pf planFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}

	plan, err := s.buildPlan(pf)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLitePlanRepo(tx)
		if err := plans.Create(ctx, plan); err != nil {
			return err
		}
		return plans.SetActive(ctx, plan.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("plan", plan.ID).Str("name", plan.Name).
		Int("weeks", plan.TotalWeeks).Msg("plan imported")
	return plan, nil
}

func (s *planService) buildPlan(pf planFile) (*domain.Plan, error) {
	if pf.Name == "" {
		return nil, fmt.Errorf("plan file: name is required")
	}
	if len(pf.Weeks) == 0 {
		return nil, fmt.Errorf("plan file: at least one week is required")
	}
	start, err := time.ParseInLocation("2006-01-02", pf.StartDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("plan file: parsing startDate: %w", err)
	}

	now := s.nowFunc()
	plan := &domain.Plan{
		ID:         uuid.NewString(),
		Name:       pf.Name,
		StartDate:  start,
		TotalWeeks: len(pf.Weeks),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for wi, w := range pf.Weeks {
		week := domain.PlanWeek{Index: wi}
		for di, d := range w.Days {
			dayType := domain.DayType(d.Type)
			switch dayType {
			case domain.DayRun, domain.DayRest, domain.DayCross:
			default:
				return nil, fmt.Errorf("plan file: week %d day %d: unknown day type %q", wi, di, d.Type)
			}
			label := d.Label
			if label == "" && dayType == domain.DayRun {
				label = domain.RunLabel(d.Distance, d.Note)
			}
			week.Days = append(week.Days, domain.PlanDay{
				DayIndex: di,
				Type:     dayType,
				Label:    label,
				Distance: d.Distance,
				Note:     d.Note,
			})
		}
		plan.Weeks = append(plan.Weeks, week)
	}
	return plan, nil
}

func (s *planService) ActivePlan(ctx context.Context) (*domain.Plan, error) {
	return s.plans.GetActive(ctx)
}

// LogRun stores a synced run and marks its plan slot completed, in one
// transaction.
func (s *planService) LogRun(ctx context.Context, rec *domain.RunRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.SyncedAt.IsZero() {
		rec.SyncedAt = s.nowFunc()
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		records := repository.NewSQLiteRunRecordRepo(tx)
		plans := repository.NewSQLitePlanRepo(tx)
		if err := records.Create(ctx, rec); err != nil {
			return err
		}
		return plans.MarkDayCompleted(ctx, rec.PlanID, rec.WeekIndex, rec.DayIndex)
	})
}

func (s *planService) SetScore(ctx context.Context, kind domain.ScoreKind, value int) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("%s score must be between 0 and 100", kind)
	}
	return s.scores.Record(ctx, kind, value, s.nowFunc())
}

func (s *planService) Preferences(ctx context.Context) (*domain.CoachPreferences, error) {
	p, err := s.prefs.Get(ctx)
	if err != nil {
		d := domain.DefaultPreferences()
		return &d, nil
	}
	return p, nil
}

func (s *planService) UpdatePreferences(ctx context.Context, p *domain.CoachPreferences) error {
	return s.prefs.Upsert(ctx, p)
}

func (s *planService) WeeklyMileage(ctx context.Context, planID string) ([]domain.WeekMileage, error) {
	return s.plans.WeeklyMileage(ctx, planID)
}
