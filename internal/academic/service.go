package academic

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor identifies who is asking for a mutation.
type Actor struct {
	ID   string
	Role string
}

// RoleChecker answers whether a role may administer gradebooks
// (lock/unlock). Plain instructors may not.
type RoleChecker interface {
	CanAdminister(role string) bool
}

// ItemInput is the payload for creating or editing a grade item.
type ItemInput struct {
	Name          string   `json:"name" validate:"required"`
	Weight        float64  `json:"weight" validate:"gt=0"`
	DescriptorIDs []string `json:"performance_descriptor_ids,omitempty" validate:"omitempty,dive,required"`
}

// ScoreInput is the payload for writing one student's score on one item.
// A nil Score clears the entry back to "not yet graded".
type ScoreInput struct {
	StudentID string   `json:"student_id" validate:"required"`
	ItemID    string   `json:"grade_item_id" validate:"required"`
	Score     *float64 `json:"score"`
}

// Service is the single mutation boundary for gradebooks. Every operation
// reads the current record, produces a new value, and writes it back as a
// whole-record replace; the lock state machine gates all of them.
type Service struct {
	repo     Repository
	roles    RoleChecker
	validate *validator.Validate
	log      *zap.Logger
}

func NewService(repo Repository, roles RoleChecker, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		roles:    roles,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Ensure returns the gradebook for the natural key, lazily creating an
// empty unlocked one on first access. There is no pre-provisioning.
func (s *Service) Ensure(ctx context.Context, subject, grade, group, period string, actor Actor) (Gradebook, error) {
	id := BookID(subject, grade, group, period)
	gb, err := s.repo.Get(ctx, id)
	if err == nil {
		return gb, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Gradebook{}, err
	}
	gb = Gradebook{
		Subject:      subject,
		Grade:        grade,
		Group:        group,
		Period:       period,
		OwnerID:      actor.ID,
		Items:        []GradeItem{},
		Scores:       []StudentScore{},
		Observations: map[string]string{},
	}
	stored, err := s.repo.Put(ctx, gb)
	if errors.Is(err, ErrVersionConflict) {
		// Lost the creation race; the winner's record is authoritative.
		return s.repo.Get(ctx, id)
	}
	if err != nil {
		return Gradebook{}, err
	}
	s.log.Info("gradebook created",
		zap.String("id", id), zap.String("owner", actor.ID))
	return stored, nil
}

func (s *Service) Get(ctx context.Context, id string) (Gradebook, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Gradebook, error) {
	return s.repo.List(ctx, f)
}

// AddItem appends a weighted assessment item. Weights at or below zero are
// rejected; totals above 1.0 succeed with a non-blocking warning.
func (s *Service) AddItem(ctx context.Context, id string, in ItemInput, actor Actor) (Gradebook, Warning, error) {
	if err := s.validateItem(in); err != nil {
		return Gradebook{}, "", err
	}
	gb, err := s.mutableCopy(ctx, id)
	if err != nil {
		return Gradebook{}, "", err
	}
	gb.Items = append(gb.Items, GradeItem{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Weight:        in.Weight,
		DescriptorIDs: in.DescriptorIDs,
	})
	stored, err := s.repo.Put(ctx, gb)
	if err != nil {
		return Gradebook{}, "", err
	}
	return stored, weightWarning(stored), nil
}

func (s *Service) UpdateItem(ctx context.Context, id, itemID string, in ItemInput, actor Actor) (Gradebook, Warning, error) {
	if err := s.validateItem(in); err != nil {
		return Gradebook{}, "", err
	}
	gb, err := s.mutableCopy(ctx, id)
	if err != nil {
		return Gradebook{}, "", err
	}
	idx := itemIndex(gb.Items, itemID)
	if idx < 0 {
		return Gradebook{}, "", ErrItemNotFound
	}
	gb.Items[idx].Name = in.Name
	gb.Items[idx].Weight = in.Weight
	gb.Items[idx].DescriptorIDs = in.DescriptorIDs
	stored, err := s.repo.Put(ctx, gb)
	if err != nil {
		return Gradebook{}, "", err
	}
	return stored, weightWarning(stored), nil
}

// RemoveItem drops an item and every score recorded against it.
func (s *Service) RemoveItem(ctx context.Context, id, itemID string, actor Actor) (Gradebook, error) {
	gb, err := s.mutableCopy(ctx, id)
	if err != nil {
		return Gradebook{}, err
	}
	idx := itemIndex(gb.Items, itemID)
	if idx < 0 {
		return Gradebook{}, ErrItemNotFound
	}
	gb.Items = append(gb.Items[:idx], gb.Items[idx+1:]...)
	kept := gb.Scores[:0]
	for _, sc := range gb.Scores {
		if sc.ItemID != itemID {
			kept = append(kept, sc)
		}
	}
	gb.Scores = kept
	return s.repo.Put(ctx, gb)
}

// PutScore records a student's raw score on an item, clamping present
// values into [0,5] at the write boundary rather than storing them
// out-of-range or rejecting them.
func (s *Service) PutScore(ctx context.Context, id string, in ScoreInput, actor Actor) (Gradebook, error) {
	if err := s.validate.Struct(in); err != nil {
		return Gradebook{}, err
	}
	gb, err := s.mutableCopy(ctx, id)
	if err != nil {
		return Gradebook{}, err
	}
	if itemIndex(gb.Items, in.ItemID) < 0 {
		return Gradebook{}, ErrItemNotFound
	}
	if in.Score != nil {
		v := clampScore(*in.Score)
		in.Score = &v
	}
	replaced := false
	for i, sc := range gb.Scores {
		if sc.StudentID == in.StudentID && sc.ItemID == in.ItemID {
			gb.Scores[i].Score = in.Score
			replaced = true
			break
		}
	}
	if !replaced {
		gb.Scores = append(gb.Scores, StudentScore{
			StudentID: in.StudentID,
			ItemID:    in.ItemID,
			Score:     in.Score,
		})
	}
	return s.repo.Put(ctx, gb)
}

// SetObservation writes the free-text note for one student. An empty text
// removes the note.
func (s *Service) SetObservation(ctx context.Context, id, studentID, text string, actor Actor) (Gradebook, error) {
	gb, err := s.mutableCopy(ctx, id)
	if err != nil {
		return Gradebook{}, err
	}
	if gb.Observations == nil {
		gb.Observations = map[string]string{}
	}
	if text == "" {
		delete(gb.Observations, studentID)
	} else {
		gb.Observations[studentID] = text
	}
	return s.repo.Put(ctx, gb)
}

// SetPeriodDescriptors replaces the advisory descriptor references for the
// whole period.
func (s *Service) SetPeriodDescriptors(ctx context.Context, id string, descriptorIDs []string, actor Actor) (Gradebook, error) {
	gb, err := s.mutableCopy(ctx, id)
	if err != nil {
		return Gradebook{}, err
	}
	gb.DescriptorIDs = descriptorIDs
	return s.repo.Put(ctx, gb)
}

// SetLocked drives the lock state machine. Only administrative roles
// (coordinator, rector, admin) may transition in either direction.
// Setting the same state twice is a no-op, not an error.
func (s *Service) SetLocked(ctx context.Context, id string, locked bool, actor Actor) (Gradebook, error) {
	if s.roles != nil && !s.roles.CanAdminister(actor.Role) {
		return Gradebook{}, ErrForbidden
	}
	gb, err := s.repo.Get(ctx, id)
	if err != nil {
		return Gradebook{}, err
	}
	if gb.Locked == locked {
		return gb, nil
	}
	gb = gb.Clone()
	gb.Locked = locked
	stored, err := s.repo.Put(ctx, gb)
	if err != nil {
		return Gradebook{}, err
	}
	s.log.Info("gradebook lock changed",
		zap.String("id", id), zap.Bool("locked", locked), zap.String("actor", actor.ID))
	return stored, nil
}

// mutableCopy loads a gradebook and rejects the mutation up front when it
// is locked, before any change is produced.
func (s *Service) mutableCopy(ctx context.Context, id string) (Gradebook, error) {
	gb, err := s.repo.Get(ctx, id)
	if err != nil {
		return Gradebook{}, err
	}
	if gb.Locked {
		return Gradebook{}, ErrLocked
	}
	return gb.Clone(), nil
}

func (s *Service) validateItem(in ItemInput) error {
	if in.Weight <= 0 {
		return &ValidationError{Field: "weight", Reason: "must be greater than zero"}
	}
	return s.validate.Struct(in)
}

func weightWarning(gb Gradebook) Warning {
	if gb.TotalWeight() > 1.0+1e-9 {
		return WarnWeightOver100
	}
	return ""
}

func itemIndex(items []GradeItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 5:
		return 5
	default:
		return v
	}
}
