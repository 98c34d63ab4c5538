package service

import (
	"context"

	"anoa.com/lesprivat/internal/repository"
	"github.com/google/uuid"
)

// AccessService decides who a user may message and whose conversation
// history they may read.
//
// Reachable = counterparts of live (ONGOING) engagements: owners of adverts
// the user applied to, plus applicants to the user's own adverts. Only
// reachable users can receive new messages.
//
// Viewable = reachable plus anyone the user has ever exchanged a message
// with. A rejected or finished engagement revokes sending, but the old
// conversation stays readable.
//
// The user is never a member of their own sets.
type AccessService interface {
	ReachableUsers(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
	ViewableUsers(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
	CanMessage(ctx context.Context, userID, targetID uuid.UUID) (bool, error)
	CanView(ctx context.Context, userID, targetID uuid.UUID) (bool, error)
}

type accessService struct {
	accessRepo repository.AccessRepository
}

func NewAccessService(accessRepo repository.AccessRepository) AccessService {
	return &accessService{accessRepo: accessRepo}
}

func (s *accessService) ReachableUsers(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	teachers, err := s.accessRepo.OngoingTeachers(ctx, userID)
	if err != nil {
		return nil, err
	}
	students, err := s.accessRepo.OngoingStudents(ctx, userID)
	if err != nil {
		return nil, err
	}

	set := make(map[uuid.UUID]struct{}, len(teachers)+len(students))
	addAllExcept(set, teachers, userID)
	addAllExcept(set, students, userID)
	return set, nil
}

func (s *accessService) ViewableUsers(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	set, err := s.ReachableUsers(ctx, userID)
	if err != nil {
		return nil, err
	}

	counterparts, err := s.accessRepo.MessageCounterparts(ctx, userID)
	if err != nil {
		return nil, err
	}
	addAllExcept(set, counterparts, userID)
	return set, nil
}

func (s *accessService) CanMessage(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	if userID == targetID {
		return false, nil
	}
	set, err := s.ReachableUsers(ctx, userID)
	if err != nil {
		return false, err
	}
	_, ok := set[targetID]
	return ok, nil
}

func (s *accessService) CanView(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	if userID == targetID {
		return false, nil
	}
	set, err := s.ViewableUsers(ctx, userID)
	if err != nil {
		return false, err
	}
	_, ok := set[targetID]
	return ok, nil
}

func addAllExcept(set map[uuid.UUID]struct{}, ids []uuid.UUID, except uuid.UUID) {
	for _, id := range ids {
		if id == except {
			continue
		}
		set[id] = struct{}{}
	}
}
