package editor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"

	"github.com/garethjevans/GPXviz/internal/track"
)

func TestStoreSaveAndGet(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	points := cornerPoints()
	summary := track.SummaryData{TrackLength: 250, TotalClimbing: 12, TotalDescending: 7}
	createdAt := time.Now()

	mock.ExpectQuery(`INSERT INTO saved_tracks`).
		WithArgs(pgxmock.AnyArg(), "Alpine", pgxmock.AnyArg(), 250.0, 12.0, 7.0).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	store := NewStore(mock)
	saved, err := store.Save(context.Background(), "Alpine", points, summary)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" || saved.LengthM != 250 {
		t.Fatalf("unexpected saved track %+v", saved)
	}

	payload, _ := json.Marshal(points)
	mock.ExpectQuery(`SELECT id, name, points, length_m, climbing_m, descending_m, created_at`).
		WithArgs(saved.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "points", "length_m", "climbing_m", "descending_m", "created_at"}).
			AddRow(saved.ID, "Alpine", payload, 250.0, 12.0, 7.0, createdAt))

	loaded, err := store.Get(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(loaded.Points) != len(points) || loaded.Points[1] != points[1] {
		t.Fatalf("points did not survive the round trip: %+v", loaded.Points)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreList(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, length_m, climbing_m, descending_m, created_at`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "length_m", "climbing_m", "descending_m", "created_at"}).
			AddRow("t-1", "First", 100.0, 5.0, 5.0, time.Now()).
			AddRow("t-2", "Second", 200.0, 10.0, 2.0, time.Now()))

	store := NewStore(mock)
	tracks, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tracks) != 2 || tracks[0].Name != "First" {
		t.Fatalf("unexpected list %+v", tracks)
	}
	if tracks[0].Points != nil {
		t.Fatalf("list must not carry point payloads")
	}
}

func TestStoreDelete(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM saved_tracks`).
		WithArgs("t-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	store := NewStore(mock)
	if err := store.Delete(context.Background(), "t-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestStoreSaveError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO saved_tracks`).
		WithArgs(pgxmock.AnyArg(), "Alpine", pgxmock.AnyArg(), 0.0, 0.0, 0.0).
		WillReturnError(errQuery)

	store := NewStore(mock)
	if _, err := store.Save(context.Background(), "Alpine", cornerPoints(), track.SummaryData{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestStoreGetBadPayload(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, points, length_m, climbing_m, descending_m, created_at`).
		WithArgs("t-bad").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "points", "length_m", "climbing_m", "descending_m", "created_at"}).
			AddRow("t-bad", "Broken", []byte("{"), 0.0, 0.0, 0.0, time.Now()))

	store := NewStore(mock)
	if _, err := store.Get(context.Background(), "t-bad"); err == nil {
		t.Fatalf("expected error for corrupt payload")
	}
}

func TestStoreListError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, length_m, climbing_m, descending_m, created_at`).
		WillReturnError(errQuery)

	store := NewStore(mock)
	if _, err := store.List(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

var errQuery = errors.New("query error")
