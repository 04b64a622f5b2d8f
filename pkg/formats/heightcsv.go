package formats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/Faultbox/tidewater/pkg/wave"
)

// Height series errors.
var (
	ErrNoHeightColumn = errors.New("no height column (expected Points:1)")
	ErrNoSamples      = errors.New("no usable samples")
)

// HeightSeries is the free-surface height at one horizontal position over
// time, in ascending time order.
type HeightSeries struct {
	Times   []float64
	Heights []float64
}

// Len returns the number of timesteps.
func (s *HeightSeries) Len() int {
	return len(s.Times)
}

// ParseHeightCSV reads a ParaView "plot data over time" export of a vertical
// line through the water contour. Rows are grouped by the Time column (or
// the first column when there is none) and each timestep's height is the
// median of its Points:1 values. Rows with NaN time or height are skipped.
func ParseHeightCSV(r io.Reader) (*HeightSeries, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	timeCol, yCol := 0, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "time" || name == "t" {
			timeCol = i
			break
		}
	}
	for i, name := range header {
		if strings.Contains(strings.ToLower(name), "points:1") {
			yCol = i
			break
		}
	}
	if yCol < 0 {
		return nil, ErrNoHeightColumn
	}

	groups := make(map[float64][]float64)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		tt, err := strconv.ParseFloat(strings.TrimSpace(rec[timeCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: time: %w", line, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(rec[yCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: height: %w", line, err)
		}
		if math.IsNaN(tt) || math.IsNaN(y) {
			continue
		}
		groups[tt] = append(groups[tt], y)
	}

	if len(groups) == 0 {
		return nil, ErrNoSamples
	}

	s := &HeightSeries{
		Times:   make([]float64, 0, len(groups)),
		Heights: make([]float64, 0, len(groups)),
	}
	for tt := range groups {
		s.Times = append(s.Times, tt)
	}
	slices.Sort(s.Times)
	for _, tt := range s.Times {
		s.Heights = append(s.Heights, wave.Median(groups[tt]))
	}
	return s, nil
}

// ParseHeightCSVFromPath reads a height series CSV file.
func ParseHeightCSVFromPath(path string) (*HeightSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening height series: %w", err)
	}
	defer f.Close()

	return ParseHeightCSV(f)
}

// Fit fits one wave component to the series.
func (s *HeightSeries) Fit(opts wave.FitOptions) (wave.FitResult, error) {
	return wave.Fit(s.Times, s.Heights, opts)
}
