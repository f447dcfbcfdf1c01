package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/repository"
)

// MemberService exposes the public member roster.
type MemberService interface {
	ListActive(ctx context.Context, limit int) ([]dto.PublicMemberResponse, error)
}

type memberService struct {
	repo   repository.MemberRepository
	logger zerolog.Logger
}

// NewMemberService constructs the public member service.
func NewMemberService(repo repository.MemberRepository, logger zerolog.Logger) MemberService {
	return &memberService{
		repo:   repo,
		logger: logger.With().Str("component", "member_service").Logger(),
	}
}

func (s *memberService) ListActive(ctx context.Context, limit int) ([]dto.PublicMemberResponse, error) {
	members, err := s.repo.ListActive(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PublicMemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, dto.NewPublicMemberResponse(member))
	}
	return responses, nil
}
