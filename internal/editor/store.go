package editor

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/garethjevans/GPXviz/internal/db"
	"github.com/garethjevans/GPXviz/internal/track"
)

// Store persists finished tracks. Sessions live in redis; only an explicit
// save writes through to postgres.
type Store struct {
	db db.Querier
}

func NewStore(db db.Querier) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ctx context.Context, name string, points []track.TrackPoint, summary track.SummaryData) (SavedTrack, error) {
	saved := SavedTrack{
		ID:          uuid.NewString(),
		Name:        name,
		Points:      points,
		LengthM:     summary.TrackLength,
		ClimbingM:   summary.TotalClimbing,
		DescendingM: summary.TotalDescending,
	}
	payload, err := json.Marshal(saved.Points)
	if err != nil {
		return SavedTrack{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO saved_tracks (id, name, points, length_m, climbing_m, descending_m)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, saved.ID, saved.Name, payload, saved.LengthM, saved.ClimbingM, saved.DescendingM)
	if err := row.Scan(&saved.CreatedAt); err != nil {
		return SavedTrack{}, err
	}
	return saved, nil
}

func (s *Store) Get(ctx context.Context, id string) (SavedTrack, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, points, length_m, climbing_m, descending_m, created_at
		FROM saved_tracks WHERE id=$1
	`, id)

	var saved SavedTrack
	var payload []byte
	if err := row.Scan(&saved.ID, &saved.Name, &payload, &saved.LengthM, &saved.ClimbingM, &saved.DescendingM, &saved.CreatedAt); err != nil {
		return SavedTrack{}, err
	}
	if err := json.Unmarshal(payload, &saved.Points); err != nil {
		return SavedTrack{}, err
	}
	return saved, nil
}

// List returns saved tracks without their point payloads.
func (s *Store) List(ctx context.Context) ([]SavedTrack, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, length_m, climbing_m, descending_m, created_at
		FROM saved_tracks
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []SavedTrack
	for rows.Next() {
		var saved SavedTrack
		if err := rows.Scan(&saved.ID, &saved.Name, &saved.LengthM, &saved.ClimbingM, &saved.DescendingM, &saved.CreatedAt); err != nil {
			return nil, err
		}
		tracks = append(tracks, saved)
	}
	return tracks, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM saved_tracks WHERE id=$1`, id)
	return err
}
