package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/garethjevans/GPXviz/internal/anomaly"
)

const cleanGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><name>Steady Climb</name><trkseg>
    <trkpt lat="0.000" lon="0"><ele>100</ele></trkpt>
    <trkpt lat="0.001" lon="0"><ele>101</ele></trkpt>
    <trkpt lat="0.002" lon="0"><ele>102</ele></trkpt>
  </trkseg></trk>
</gpx>`

const spikyGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><name>Bad Survey</name><trkseg>
    <trkpt lat="0.000" lon="0"><ele>100</ele></trkpt>
    <trkpt lat="0.001" lon="0"><ele>100</ele></trkpt>
    <trkpt lat="0.002" lon="0"><ele>130</ele></trkpt>
  </trkseg></trk>
</gpx>`

func writeGPX(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestCheckFileClean(t *testing.T) {
	path := writeGPX(t, "clean.gpx", cleanGPX)
	r := checkFile(path, anomaly.DefaultOptions())

	if r.Error != "" {
		t.Fatalf("unexpected error %q", r.Error)
	}
	if r.Name != "Steady Climb" || r.Points != 3 {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.problemCount() != 0 {
		t.Fatalf("expected clean track, got %+v", r)
	}
	if r.TrackLengthM < 200 || r.TrackLengthM > 250 {
		t.Fatalf("unexpected length %f", r.TrackLengthM)
	}
}

func TestCheckFileGradientSpike(t *testing.T) {
	path := writeGPX(t, "spiky.gpx", spikyGPX)
	r := checkFile(path, anomaly.DefaultOptions())

	if r.Error != "" {
		t.Fatalf("unexpected error %q", r.Error)
	}
	// flat then ~27% up over ~111 m
	if r.GradientChanges != 1 {
		t.Fatalf("expected one gradient change, got %+v", r)
	}
	if r.BearingChanges != 0 {
		t.Fatalf("straight line should have no direction changes, got %+v", r)
	}
}

func TestCheckFileMissing(t *testing.T) {
	r := checkFile(filepath.Join(t.TempDir(), "nope.gpx"), anomaly.DefaultOptions())
	if r.Error == "" {
		t.Fatalf("expected a read error")
	}
}

func TestRunCheckText(t *testing.T) {
	clean := writeGPX(t, "clean.gpx", cleanGPX)
	spiky := writeGPX(t, "spiky.gpx", spikyGPX)

	var buf bytes.Buffer
	flagged, err := runCheck([]string{clean, spiky}, anomaly.DefaultOptions(), checkOutput{}, &buf)
	if err != nil {
		t.Fatalf("run check: %v", err)
	}
	if flagged != 1 {
		t.Fatalf("expected one flagged file, got %d", flagged)
	}

	out := buf.String()
	if !strings.Contains(out, "clean.gpx") || !strings.Contains(out, "spiky.gpx") {
		t.Fatalf("missing file names in output:\n%s", out)
	}
	if !strings.Contains(out, "1 abrupt gradient changes") {
		t.Fatalf("missing problem detail in output:\n%s", out)
	}
}

func TestRunCheckQuiet(t *testing.T) {
	spiky := writeGPX(t, "spiky.gpx", spikyGPX)

	var buf bytes.Buffer
	flagged, err := runCheck([]string{spiky}, anomaly.DefaultOptions(), checkOutput{Quiet: true}, &buf)
	if err != nil {
		t.Fatalf("run check: %v", err)
	}
	if flagged != 1 {
		t.Fatalf("expected one flagged file, got %d", flagged)
	}
	if strings.Contains(buf.String(), "abrupt") {
		t.Fatalf("quiet mode should not print details:\n%s", buf.String())
	}
}

func TestRunCheckJSON(t *testing.T) {
	clean := writeGPX(t, "clean.gpx", cleanGPX)
	spiky := writeGPX(t, "spiky.gpx", spikyGPX)

	var buf bytes.Buffer
	flagged, err := runCheck([]string{clean, spiky}, anomaly.DefaultOptions(), checkOutput{JSON: true}, &buf)
	if err != nil {
		t.Fatalf("run check: %v", err)
	}
	if flagged != 1 {
		t.Fatalf("expected one flagged file, got %d", flagged)
	}

	var reports []report
	if err := json.Unmarshal(buf.Bytes(), &reports); err != nil {
		t.Fatalf("decode reports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected two reports, got %d", len(reports))
	}
	if reports[0].Name != "Steady Climb" || reports[1].GradientChanges != 1 {
		t.Fatalf("unexpected reports %+v", reports)
	}
	if reports[0].Loop != anomaly.AlmostLoop {
		t.Fatalf("expected a near loop over 222 m, got %q", reports[0].Loop)
	}
}

func TestRunCheckBadFileIsFlagged(t *testing.T) {
	broken := writeGPX(t, "broken.gpx", "<gpx")

	var buf bytes.Buffer
	flagged, err := runCheck([]string{broken}, anomaly.DefaultOptions(), checkOutput{}, &buf)
	if err != nil {
		t.Fatalf("run check: %v", err)
	}
	if flagged != 1 {
		t.Fatalf("expected broken file to be flagged, got %d", flagged)
	}
	if !strings.Contains(buf.String(), "broken.gpx") {
		t.Fatalf("missing error line:\n%s", buf.String())
	}
}

func TestNewAppHelp(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf)

	if err := app.Run([]string{"gpxcheck", "--help"}); err != nil {
		t.Fatalf("help: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "gradient") || !strings.Contains(out, "bearing") {
		t.Fatalf("help output missing flags:\n%s", out)
	}
}
