package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/garethjevans/GPXviz/internal/anomaly"
	"github.com/garethjevans/GPXviz/internal/gpxio"
	"github.com/garethjevans/GPXviz/internal/track"
)

func main() {
	log.SetFlags(0)
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "gpxcheck",
		Usage:     "Scan GPX files for abrupt gradient and direction changes",
		ArgsUsage: "FILE...",
		Writer:    out,
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:    "gradient",
				Aliases: []string{"g"},
				Usage:   "flag gradient changes above this many percentage points",
				Value:   10.0,
			},
			&cli.Float64Flag{
				Name:    "bearing",
				Aliases: []string{"b"},
				Usage:   "flag direction changes above this many degrees",
				Value:   90.0,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "write JSON reports instead of text",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "report per-file totals only",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("no gpx files given", 2)
			}
			options := anomaly.Options{
				GradientChangeThreshold: c.Float64("gradient"),
				BearingChangeThreshold:  c.Float64("bearing"),
			}
			if err := options.Validate(); err != nil {
				return cli.Exit(err.Error(), 2)
			}

			mode := checkOutput{
				JSON:     c.Bool("json"),
				Quiet:    c.Bool("quiet"),
				Progress: !c.Bool("json") && c.NArg() > 1,
			}
			flagged, err := runCheck(c.Args().Slice(), options, mode, out)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			if flagged > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

type checkOutput struct {
	JSON     bool
	Quiet    bool
	Progress bool
}

type report struct {
	File            string           `json:"file"`
	Name            string           `json:"name,omitempty"`
	Points          int              `json:"points"`
	TrackLengthM    float64          `json:"track_length_m"`
	GradientChanges int              `json:"gradient_changes"`
	BearingChanges  int              `json:"bearing_changes"`
	ZeroLengths     int              `json:"zero_lengths"`
	Loop            anomaly.LoopKind `json:"loop"`
	Error           string           `json:"error,omitempty"`
}

func (r report) problemCount() int {
	return r.GradientChanges + r.BearingChanges + r.ZeroLengths
}

// runCheck scans every path and writes a report per file to out. It returns
// how many files were flagged, either for problems or for read errors.
func runCheck(paths []string, options anomaly.Options, mode checkOutput, out io.Writer) (int, error) {
	var bar *progressbar.ProgressBar
	if mode.Progress {
		bar = progressbar.Default(int64(len(paths)), "Checking")
	}

	flagged := 0
	reports := make([]report, 0, len(paths))
	for _, path := range paths {
		r := checkFile(path, options)
		if r.Error != "" || r.problemCount() > 0 {
			flagged++
		}
		reports = append(reports, r)
		if !mode.JSON {
			writeText(out, r, mode.Quiet)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if mode.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return flagged, err
		}
	}
	return flagged, nil
}

func checkFile(path string, options anomaly.Options) report {
	r := report{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	points, name, err := gpxio.Parse(data)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	roads := track.DeriveRoads(track.DeriveNodes(track.DeriveScaling(points), points))
	problems, err := anomaly.DeriveProblems(points, roads, options)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	r.Name = name
	r.Points = len(points)
	r.TrackLengthM = track.DeriveSummary(roads).TrackLength
	r.GradientChanges = len(problems.GradientChanges)
	r.BearingChanges = len(problems.BearingChanges)
	r.ZeroLengths = len(problems.ZeroLengths)
	r.Loop = problems.Loop.Kind
	return r
}

func writeText(out io.Writer, r report, quiet bool) {
	if r.Error != "" {
		fmt.Fprintf(out, "%s: %s\n", r.File, r.Error)
		return
	}
	fmt.Fprintf(out, "%s: %d points, %.1f km, %d problems\n",
		r.File, r.Points, r.TrackLengthM/1000.0, r.problemCount())
	if quiet || r.problemCount() == 0 {
		return
	}
	if r.GradientChanges > 0 {
		fmt.Fprintf(out, "  %d abrupt gradient changes\n", r.GradientChanges)
	}
	if r.BearingChanges > 0 {
		fmt.Fprintf(out, "  %d abrupt direction changes\n", r.BearingChanges)
	}
	if r.ZeroLengths > 0 {
		fmt.Fprintf(out, "  %d zero-length segments\n", r.ZeroLengths)
	}
}
