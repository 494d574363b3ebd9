package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/garethjevans/GPXviz/internal/anomaly"
	"github.com/garethjevans/GPXviz/internal/edit"
	"github.com/garethjevans/GPXviz/internal/smooth"
	"github.com/garethjevans/GPXviz/internal/stream"
	"github.com/garethjevans/GPXviz/internal/track"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrUnknownOperation = errors.New("unknown operation")
)

type Service struct {
	redis   *redis.Client
	hub     *stream.Hub
	ttl     time.Duration
	options anomaly.Options
}

func NewService(redisClient *redis.Client, hub *stream.Hub, ttl time.Duration, options anomaly.Options) *Service {
	if options.Validate() != nil {
		options = anomaly.DefaultOptions()
	}
	return &Service{redis: redisClient, hub: hub, ttl: ttl, options: options}
}

// Options returns the detection thresholds the service was configured with.
func (s *Service) Options() anomaly.Options {
	return s.options
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *Service) CreateSession(ctx context.Context, name string, points []track.TrackPoint) (Session, error) {
	if name == "" {
		name = "untitled"
	}
	now := time.Now().UTC()
	session := Session{
		ID:        uuid.NewString(),
		Name:      name,
		Points:    track.Reindex(points),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *Service) GetSession(ctx context.Context, id string) (Session, error) {
	raw, err := s.redis.Get(ctx, sessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, err
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *Service) store(ctx context.Context, session Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sessionKey(session.ID), payload, s.ttl).Err()
}

// ViewSession loads a session and derives its summary, loop status and
// problem count.
func (s *Service) ViewSession(ctx context.Context, id string) (View, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.viewOf(session), nil
}

func (s *Service) viewOf(session Session) View {
	scaling := track.DeriveScaling(session.Points)
	roads := track.DeriveRoads(track.DeriveNodes(scaling, session.Points))
	problems, _ := anomaly.DeriveProblems(session.Points, roads, s.options)
	return View{
		Session:  session,
		Summary:  track.DeriveSummary(roads),
		Loop:     anomaly.DetectLoopiness(session.Points),
		Problems: problems.Count(),
	}
}

// Problems runs anomaly detection over a session with the given thresholds.
func (s *Service) Problems(ctx context.Context, id string, options anomaly.Options) (anomaly.Problems, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return anomaly.Problems{}, err
	}
	scaling := track.DeriveScaling(session.Points)
	roads := track.DeriveRoads(track.DeriveNodes(scaling, session.Points))
	return anomaly.DeriveProblems(session.Points, roads, options)
}

// ApplyEdit runs one operation, stores the result and notifies listeners.
func (s *Service) ApplyEdit(ctx context.Context, id string, req EditRequest) (View, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return View{}, err
	}

	points, label, err := s.applyOperation(session.Points, req)
	if err != nil {
		return View{}, err
	}

	session.Points = points
	session.EditCount++
	session.LastLabel = label
	session.UpdatedAt = time.Now().UTC()
	if err := s.store(ctx, session); err != nil {
		return View{}, err
	}

	view := s.viewOf(session)
	if s.hub != nil {
		s.hub.BroadcastEvent(stream.Event{
			Type:        "edit",
			SessionID:   session.ID,
			Label:       label,
			Points:      len(session.Points),
			TrackLength: view.Summary.TrackLength,
			Problems:    view.Problems,
		})
	}
	return view, nil
}

// Preview runs one operation without storing the result.
func (s *Service) Preview(ctx context.Context, id string, req EditRequest) (PreviewResult, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return PreviewResult{}, err
	}

	points, label, err := s.applyOperation(session.Points, req)
	if err != nil {
		return PreviewResult{}, err
	}

	scaling := track.DeriveScaling(points)
	roads := track.DeriveRoads(track.DeriveNodes(scaling, points))
	result := PreviewResult{
		Label:   label,
		Points:  points,
		Summary: track.DeriveSummary(roads),
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(stream.Event{
			Type:        "preview",
			SessionID:   session.ID,
			Label:       label,
			Points:      len(points),
			TrackLength: result.Summary.TrackLength,
		})
	}
	return result, nil
}

func (s *Service) applyOperation(points []track.TrackPoint, req EditRequest) ([]track.TrackPoint, string, error) {
	scaling := track.DeriveScaling(points)
	roads := track.DeriveRoads(track.DeriveNodes(scaling, points))

	switch req.Op {
	case "straighten":
		return edit.Straighten(points, req.Start, req.Finish)
	case "chamfer":
		return edit.Chamfer(points, req.Node)
	case "nudge":
		return edit.Nudge(points, scaling, req.Node, req.Bearing, req.Factor)
	case "split":
		return edit.Split(points, req.Segment)
	case "delete_zero_length":
		zero := anomaly.ZeroLengthRoads(roads)
		indices := make([]int, 0, len(zero))
		for _, road := range zero {
			indices = append(indices, road.Index)
		}
		return edit.DeleteZeroLength(points, indices)
	case "close_loop":
		return edit.CloseLoop(points)
	case "smooth_bend":
		return edit.SmoothBend(points, scaling, roads, req.Start, req.Finish, req.NumPoints)
	case "smooth_gradient":
		gradient := req.Gradient
		if req.UseAverage {
			avg, ok := smooth.AverageGradient(points, roads, req.Start, req.Finish)
			if !ok {
				return nil, "", fmt.Errorf("%w: no average gradient between %d and %d",
					track.ErrInvalidRange, req.Start, req.Finish)
			}
			gradient = avg
		}
		return edit.SmoothGradientBetween(points, roads, req.Start, req.Finish, gradient, req.Bumpiness)
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownOperation, req.Op)
	}
}
