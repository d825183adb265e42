package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/productgoat/backend/internal/domain"
	"github.com/productgoat/backend/internal/infrastructure/session"
	"go.uber.org/zap"
)

// Wizard step bounds. The five steps are linear with no skip transitions.
const (
	FirstStep = 1
	LastStep  = 5
)

// WizardSession is the transient state of one onboarding wizard run. The full
// profile record lives in the session across all steps, so navigating back
// and forth never loses data entered on other steps.
type WizardSession struct {
	ID        string          `json:"sessionId"`
	Step      int             `json:"step"`
	Profile   *domain.Profile `json:"profile"`
	Completed bool            `json:"completed"`
}

// Multi-select profile fields toggled by checkbox-style answers.
var multiSelectFields = map[string]bool{
	"dietaryPreferences":  true,
	"healthGoals":         true,
	"allergies":           true,
	"shoppingPreferences": true,
	"alerts":              true,
}

// Single-value profile fields overwritten by each answer.
var scalarFields = map[string]bool{
	"name":                     true,
	"age":                      true,
	"activityLevel":            true,
	"specialInstructions":      true,
	"consumptionTipPreference": true,
}

// OnboardingService runs the five-step onboarding wizard. Wizard state is
// held in memory per session; the profile is persisted in full only when the
// final step completes.
type OnboardingService struct {
	profiles domain.ProfileRepository
	sessions *session.Store
	mu       sync.Mutex
	log      *zap.SugaredLogger
}

// NewOnboardingService creates the wizard service.
func NewOnboardingService(profiles domain.ProfileRepository, sessions *session.Store, log *zap.SugaredLogger) *OnboardingService {
	return &OnboardingService{
		profiles: profiles,
		sessions: sessions,
		log:      log,
	}
}

const wizardKeyPrefix = "onboarding:"

// Start opens a wizard session at step 1, repopulated from the stored profile
// when one exists so a returning user can resume their answers.
func (s *OnboardingService) Start(ctx context.Context) (*WizardSession, error) {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		profile = domain.NewProfile()
	}

	sess := &WizardSession{
		ID:      uuid.NewString(),
		Step:    FirstStep,
		Profile: profile,
	}
	s.sessions.Set(wizardKeyPrefix+sess.ID, sess)
	s.log.Debugw("onboarding session started", "session", sess.ID)
	return sess, nil
}

// Get returns the current wizard state.
func (s *OnboardingService) Get(id string) (*WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(id)
}

// Next advances one step. On the last step it instead submits: the full
// profile is persisted and the session becomes terminal.
func (s *OnboardingService) Next(ctx context.Context, id string) (*WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	if sess.Step < LastStep {
		sess.Step++
		s.sessions.Set(wizardKeyPrefix+id, sess)
		return sess, nil
	}

	if err := s.profiles.Save(ctx, sess.Profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	sess.Completed = true
	s.sessions.Delete(wizardKeyPrefix + id)
	s.log.Infow("onboarding completed", "session", id)
	return sess, nil
}

// Back returns to the previous step; at step 1 it is a no-op.
func (s *OnboardingService) Back(id string) (*WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if sess.Step > FirstStep {
		sess.Step--
		s.sessions.Set(wizardKeyPrefix+id, sess)
	}
	return sess, nil
}

// Toggle flips membership of item in one of the multi-select fields:
// added when absent, removed when present.
func (s *OnboardingService) Toggle(id, field, item string) (*WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if !multiSelectFields[field] {
		return nil, fmt.Errorf("not a multi-select field: %q", field)
	}

	target := profileField(sess.Profile, field)
	*target = toggleItem(*target, item)
	s.sessions.Set(wizardKeyPrefix+id, sess)
	return sess, nil
}

// Set overwrites a single-value field, or the favorite-foods list from a
// comma-separated value.
func (s *OnboardingService) Set(id, field, value string) (*WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	switch {
	case field == "favoriteFoods":
		sess.Profile.FavoriteFoods = splitList(value)
	case scalarFields[field]:
		switch field {
		case "name":
			sess.Profile.Name = value
		case "age":
			sess.Profile.Age = value
		case "activityLevel":
			sess.Profile.ActivityLevel = value
		case "specialInstructions":
			sess.Profile.SpecialInstructions = value
		case "consumptionTipPreference":
			sess.Profile.ConsumptionTipPreference = value
		}
	default:
		return nil, fmt.Errorf("unknown field: %q", field)
	}

	s.sessions.Set(wizardKeyPrefix+id, sess)
	return sess, nil
}

// lookup fetches a live session; callers hold the service mutex.
func (s *OnboardingService) lookup(id string) (*WizardSession, error) {
	value, ok := s.sessions.Get(wizardKeyPrefix + id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return value.(*WizardSession), nil
}

// profileField maps a multi-select field name to its slice in the profile.
func profileField(p *domain.Profile, name string) *[]string {
	switch name {
	case "dietaryPreferences":
		return &p.DietaryPreferences
	case "healthGoals":
		return &p.HealthGoals
	case "allergies":
		return &p.Allergies
	case "shoppingPreferences":
		return &p.ShoppingPreferences
	case "alerts":
		return &p.Alerts
	}
	return nil
}

// toggleItem adds the item if absent, removes it if present.
func toggleItem(items []string, item string) []string {
	for i, existing := range items {
		if existing == item {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return append(items, item)
}

// splitList parses a comma-separated input into a trimmed list.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}
