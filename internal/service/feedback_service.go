package service

import (
	"context"
	"fmt"

	"github.com/crisphealth/health-assistant/internal/domain"
	"github.com/crisphealth/health-assistant/internal/langfuse"
)

// FeedbackScoreName is the Langfuse score recorded for user ratings.
const FeedbackScoreName = "user_rating"

// FeedbackService records user ratings of narrated responses.
type FeedbackService interface {
	Submit(ctx context.Context, req domain.FeedbackRequest) error
}

type feedbackService struct {
	langfuse langfuse.Client
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(lf langfuse.Client) FeedbackService {
	return &feedbackService{langfuse: lf}
}

func (s *feedbackService) Submit(ctx context.Context, req domain.FeedbackRequest) error {
	if !s.langfuse.IsEnabled() {
		return fmt.Errorf("%w: feedback collection is disabled", domain.ErrNotFound)
	}
	if err := s.langfuse.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    FeedbackScoreName,
		Value:   float64(req.Score),
		Comment: req.Comment,
	}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return nil
}
