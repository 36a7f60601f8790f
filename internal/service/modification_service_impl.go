package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/contract"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/db"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/repository"
)

// Accept selects one option on an active recommendation. The
// modification path snapshots every affected week before touching it
// and commits plan rows, modification, and status flip in one
// transaction, so a failure leaves nothing half-applied.
func (s *advisorService) Accept(ctx context.Context, id, optionKey string) (*domain.PlanModification, error) {
	rec, err := s.recs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &contract.AnalysisError{Code: contract.ErrRecommendationNotFound, Message: id}
		}
		return nil, err
	}
	if rec.Status != domain.StatusActive {
		return nil, &contract.AnalysisError{
			Code:    contract.ErrNotActionable,
			Message: fmt.Sprintf("recommendation is %s", rec.Status),
		}
	}
	opt := rec.Option(optionKey)
	if opt == nil {
		return nil, &contract.AnalysisError{Code: contract.ErrOptionNotFound, Message: optionKey}
	}

	if opt.ActionType == domain.ActionDismiss {
		// Choosing a no-change option is an acknowledgement, not an
		// acceptance; the card goes to dismissed with the choice recorded.
		key := opt.Key
		rec.SelectedOptionKey = &key
		if err := rec.Transition(domain.StatusDismissed); err != nil {
			return nil, err
		}
		if err := s.recs.Update(ctx, rec); err != nil {
			return nil, err
		}
		s.appendEvent(ctx, rec, domain.AnalyticsDismissed, &key)
		return nil, nil
	}
	if opt.Modification == nil {
		return nil, &contract.AnalysisError{
			Code:    contract.ErrNotActionable,
			Message: "option carries no modification",
		}
	}

	now := s.now()
	mod := s.materialize(opt.Modification, rec.ID, now)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLitePlanRepo(tx)
		recs := repository.NewSQLiteRecommendationRepo(tx)
		mods := repository.NewSQLiteModificationRepo(tx)

		plan, err := plans.GetActive(ctx)
		if err != nil {
			return fmt.Errorf("loading active plan: %w", err)
		}

		for _, adj := range mod.Adjustments {
			week := plan.Week(adj.WeekIndex)
			if week == nil {
				return fmt.Errorf("plan has no week %d: %w", adj.WeekIndex, repository.ErrNotFound)
			}
			mod.Snapshots = append(mod.Snapshots, domain.SnapshotWeek(*week))
			adjusted := domain.ApplyAdjustment(*week, adj)
			if err := plans.UpdateWeek(ctx, plan.ID, adjusted); err != nil {
				return err
			}
		}

		if err := mods.Create(ctx, mod); err != nil {
			return err
		}

		key := opt.Key
		rec.SelectedOptionKey = &key
		if err := rec.Transition(domain.StatusAccepted); err != nil {
			return err
		}
		return recs.Update(ctx, rec)
	})
	if err != nil {
		return nil, err
	}

	key := opt.Key
	s.appendEvent(ctx, rec, domain.AnalyticsAccepted, &key)
	s.log.Info().Str("recommendation", rec.ID).Str("option", opt.Key).
		Str("modification", mod.ID).Msg("plan modification applied")
	return mod, nil
}

// materialize turns an option's modification template into an applied
// record. Identity exists only past this point; templates stored inside
// recommendations never carry IDs.
func (s *advisorService) materialize(tmpl *domain.PlanModification, recID string, now time.Time) *domain.PlanModification {
	adjustments := make([]domain.WeekAdjustment, len(tmpl.Adjustments))
	copy(adjustments, tmpl.Adjustments)
	return &domain.PlanModification{
		ID:               uuid.NewString(),
		RecommendationID: recID,
		Description:      tmpl.Description,
		Type:             tmpl.Type,
		Adjustments:      adjustments,
		AppliedAt:        now,
	}
}

// Undo restores the snapshots taken at apply time, byte for byte.
// Unknown and already-undone IDs are silent no-ops.
func (s *advisorService) Undo(ctx context.Context, modificationID string) (bool, error) {
	mod, err := s.mods.GetByID(ctx, modificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if mod.Undone {
		return false, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLitePlanRepo(tx)
		mods := repository.NewSQLiteModificationRepo(tx)

		plan, err := plans.GetActive(ctx)
		if err != nil {
			return fmt.Errorf("loading active plan: %w", err)
		}
		for _, snap := range mod.Snapshots {
			if err := plans.UpdateWeek(ctx, plan.ID, domain.RestoreWeek(snap)); err != nil {
				return err
			}
		}
		mod.Undone = true
		return mods.Update(ctx, mod)
	})
	if err != nil {
		return false, err
	}

	s.log.Info().Str("modification", mod.ID).Msg("plan modification undone")
	return true, nil
}

// LastModification returns the newest applied, not-undone modification,
// or nil when there is nothing to undo.
func (s *advisorService) LastModification(ctx context.Context) (*domain.PlanModification, error) {
	mod, err := s.mods.LatestApplied(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mod, nil
}
