package message

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// ErrEmptyMessage is returned when a chat line has no nickname or content.
var ErrEmptyMessage = errors.New("message nickname and content are required")

// Service describes the business logic surface for chat messages.
type Service interface {
	// Append persists a chat message and returns the stored row. A
	// returned error means the message must not be broadcast.
	Append(ctx context.Context, nickname, content string, msgType Type) (Message, error)
	// RecentHistory returns the replay window in ascending order, already
	// in wire shape.
	RecentHistory(ctx context.Context) ([]WireMessage, error)
	// Search runs a normalized filter and returns wire-shaped results
	// newest-first.
	Search(ctx context.Context, filter SearchFilter) ([]WireMessage, error)
}

type service struct {
	repo         Repository
	historyLimit int
	log          zerolog.Logger
}

// NewService wires the message service with its repository.
func NewService(repo Repository, historyLimit int, log zerolog.Logger) Service {
	return &service{
		repo:         repo,
		historyLimit: historyLimit,
		log:          log.With().Str("component", "message-service").Logger(),
	}
}

func (s *service) Append(ctx context.Context, nickname, content string, msgType Type) (Message, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" || content == "" {
		return Message{}, ErrEmptyMessage
	}

	stored, err := s.repo.Insert(ctx, Message{
		Nickname: nickname,
		Content:  content,
		Type:     msgType,
	})
	if err != nil {
		s.log.Error().Err(err).Str("nickname", nickname).Msg("insert message")
		return Message{}, err
	}
	return stored, nil
}

func (s *service) RecentHistory(ctx context.Context) ([]WireMessage, error) {
	rows, err := s.repo.RecentHistory(ctx, s.historyLimit)
	if err != nil {
		s.log.Error().Err(err).Msg("load recent history")
		return nil, err
	}
	return toWire(rows), nil
}

func (s *service) Search(ctx context.Context, filter SearchFilter) ([]WireMessage, error) {
	rows, err := s.repo.Search(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("search messages")
		return nil, err
	}
	return toWire(rows), nil
}

func toWire(rows []Message) []WireMessage {
	out := make([]WireMessage, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToWire())
	}
	return out
}
