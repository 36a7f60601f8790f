package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

// resolveRecommendationID resolves a recommendation identifier which can
// be a full UUID or a unique prefix of one (the short IDs the listings
// print).
func resolveRecommendationID(ctx context.Context, app *App, input string) (string, error) {
	recs, err := app.Advisor.AllRecommendations(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, r := range recs {
		if r.ID == input {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, input) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no recommendation matches %q", input)
	default:
		return "", fmt.Errorf("%q matches %d recommendations, use more characters", input, len(matches))
	}
}

// resolveActiveRecommendation picks the target of accept/dismiss: the
// given ID when present, otherwise the single active recommendation.
func resolveActiveRecommendation(ctx context.Context, app *App, input string) (*domain.Recommendation, error) {
	if input != "" {
		id, err := resolveRecommendationID(ctx, app, input)
		if err != nil {
			return nil, err
		}
		recs, err := app.Advisor.AllRecommendations(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range recs {
			if r.ID == id {
				return r, nil
			}
		}
		return nil, fmt.Errorf("no recommendation matches %q", input)
	}

	active, err := app.Advisor.ActiveRecommendations(ctx)
	if err != nil {
		return nil, err
	}
	switch len(active) {
	case 0:
		return nil, fmt.Errorf("no active recommendations")
	case 1:
		return active[0], nil
	default:
		return nil, fmt.Errorf("%d recommendations are active, pass an ID", len(active))
	}
}

// resolveModificationID resolves a modification identifier, full UUID or
// unique prefix.
func resolveModificationID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		mod, err := app.Advisor.LastModification(ctx)
		if err != nil {
			return "", err
		}
		if mod == nil {
			return "", fmt.Errorf("nothing to undo")
		}
		return mod.ID, nil
	}

	mod, err := app.Advisor.LastModification(ctx)
	if err == nil && mod != nil && strings.HasPrefix(mod.ID, input) {
		return mod.ID, nil
	}
	return input, nil
}
