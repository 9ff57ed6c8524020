package services

import (
	"context"
	"log"

	"celestix/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/mroth/weightedrand/v2"
	"github.com/samber/do"
)

// ServiceIngress is the single entrypoint for activity events. One event
// walks the whole pipeline: xp roll, accrual, achievement evaluation,
// challenge tracking, reward resolution, leaderboard write-through. The
// collaborator already debounced spam, so nothing here rate-limits.
type ServiceIngress struct {
	container *do.Injector

	serviceProgression *ServiceProgression
	serviceAchievement *ServiceAchievement
	serviceChallenge   *ServiceChallenge
	serviceReward      *ServiceReward
	serviceLeaderboard *ServiceLeaderboard
	serviceConfig      *ServiceConfig
}

func NewServiceIngress(container *do.Injector) (*ServiceIngress, error) {
	serviceProgression, err := do.Invoke[*ServiceProgression](container)
	if err != nil {
		return nil, err
	}

	serviceAchievement, err := do.Invoke[*ServiceAchievement](container)
	if err != nil {
		return nil, err
	}

	serviceChallenge, err := do.Invoke[*ServiceChallenge](container)
	if err != nil {
		return nil, err
	}

	serviceReward, err := do.Invoke[*ServiceReward](container)
	if err != nil {
		return nil, err
	}

	serviceLeaderboard, err := do.Invoke[*ServiceLeaderboard](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceIngress{container, serviceProgression, serviceAchievement, serviceChallenge, serviceReward, serviceLeaderboard, serviceConfig}, nil
}

func (service *ServiceIngress) HandleActivity(ctx context.Context, event models.ActivityEvent) (*models.ActivityOutcome, error) {
	if !event.Kind.Valid() {
		return nil, errorx.Wrap(errInvalidCategory, errorx.Validation)
	}

	xp, err := service.rollXP(ctx, event.Kind)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	result, user, err := service.serviceProgression.Accrue(ctx, event.UserID, xp)
	if err != nil {
		return nil, err
	}

	outcome := &models.ActivityOutcome{XP: xp, Accrual: result}
	if !result.Applied {
		return outcome, nil
	}

	// Derived updates run outside the progression lock. Each is latched or
	// idempotent, so a mid-pipeline failure loses at most this event's
	// side effects, never corrupts state.
	if result.LeveledUp {
		intent, err := service.serviceReward.ResolveLevelUp(ctx, models.LevelUp{
			UserID:   event.UserID,
			GuildID:  event.GuildID,
			NewLevel: result.NewLevel,
		})
		if err != nil {
			log.Println("level-up reward failed:", err, "user:", event.UserID, "level:", result.NewLevel)
		} else if intent != nil {
			outcome.Intents = append(outcome.Intents, intent)
		}
	}

	unlocked, err := service.serviceAchievement.Evaluate(ctx, user)
	if err != nil {
		log.Println("achievement evaluation failed:", err, "user:", event.UserID)
	}
	for i := range unlocked {
		unlocked[i].GuildID = event.GuildID
		intent, err := service.serviceReward.ResolveAchievement(ctx, unlocked[i])
		if err != nil {
			log.Println("achievement reward failed:", err, "user:", event.UserID, "achievement:", unlocked[i].Achievement.ID)
			continue
		}
		if intent != nil {
			outcome.Intents = append(outcome.Intents, intent)
		}
	}
	outcome.Achievements = unlocked

	completions, err := service.serviceChallenge.Track(ctx, event.UserID, event.Kind)
	if err != nil {
		log.Println("challenge tracking failed:", err, "user:", event.UserID)
	}
	for i := range completions {
		completions[i].GuildID = event.GuildID
		intent, err := service.serviceReward.ResolveChallenge(ctx, completions[i])
		if err != nil {
			log.Println("challenge reward failed:", err, "user:", event.UserID, "challenge:", completions[i].Challenge.ID)
			continue
		}
		if intent != nil {
			outcome.Intents = append(outcome.Intents, intent)
		}
	}
	outcome.Challenges = completions

	service.serviceLeaderboard.UpdateEntry(ctx, event.GuildID, user)

	return outcome, nil
}

// rollXP picks the xp grant for one event. Messages roll a weighted value
// between the configured bounds, the middle being the most likely; the
// other kinds are flat.
func (service *ServiceIngress) rollXP(ctx context.Context, kind models.ActivityKind) (int, error) {
	switch kind {
	case models.ACTIVITY_REACTION:
		xp, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_XP_REACTION, DEFAULT_XP_REACTION)
		return xp, nil
	case models.ACTIVITY_VOICE_MINUTE:
		xp, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_XP_VOICE_MINUTE, DEFAULT_XP_VOICE_MINUTE)
		return xp, nil
	}

	min, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_XP_MESSAGE_MIN, DEFAULT_XP_MESSAGE_MIN)
	max, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_XP_MESSAGE_MAX, DEFAULT_XP_MESSAGE_MAX)
	if max <= min {
		return min, nil
	}

	mid := (min + max) / 2
	choices := []weightedrand.Choice[int, int]{}
	for v := min; v <= max; v++ {
		distance := v - mid
		if distance < 0 {
			distance = -distance
		}
		choices = append(choices, weightedrand.NewChoice(v, max-min-distance+1))
	}

	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return 0, err
	}
	return chooser.Pick(), nil
}
