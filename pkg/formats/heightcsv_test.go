package formats

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/tidewater/pkg/wave"
)

const testHeightCSV = `"Time","alpha.water","Points:0","Points:1","Points:2"
0.2,0.5,1,0.30,2
0.2,0.5,1,0.10,2
0.2,0.5,1,0.20,2
0,0.5,1,0.5,2
0,0.5,1,nan,2
0.1,0.5,1,0.4,2
0.1,0.5,1,0.6,2
`

func TestParseHeightCSV(t *testing.T) {
	s, err := ParseHeightCSV(strings.NewReader(testHeightCSV))
	if err != nil {
		t.Fatalf("ParseHeightCSV failed: %v", err)
	}

	wantTimes := []float64{0, 0.1, 0.2}
	wantHeights := []float64{0.5, 0.5, 0.2}
	if s.Len() != len(wantTimes) {
		t.Fatalf("expected %d timesteps, got %d", len(wantTimes), s.Len())
	}
	for i := range wantTimes {
		if s.Times[i] != wantTimes[i] {
			t.Errorf("Times[%d] = %v, want %v", i, s.Times[i], wantTimes[i])
		}
		if math.Abs(s.Heights[i]-wantHeights[i]) > 1e-12 {
			t.Errorf("Heights[%d] = %v, want %v", i, s.Heights[i], wantHeights[i])
		}
	}
}

func TestParseHeightCSV_TimeFallsBackToFirstColumn(t *testing.T) {
	data := "step,Points:1\n2,1.5\n1,0.5\n"
	s, err := ParseHeightCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseHeightCSV failed: %v", err)
	}
	if s.Len() != 2 || s.Times[0] != 1 || s.Heights[1] != 1.5 {
		t.Errorf("unexpected series: %+v", s)
	}
}

func TestParseHeightCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"no height column", "Time,Points:0\n0,1\n", ErrNoHeightColumn},
		{"only nan rows", "Time,Points:1\n0,nan\n", ErrNoSamples},
		{"header only", "Time,Points:1\n", ErrNoSamples},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeightCSV(strings.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := ParseHeightCSV(strings.NewReader("Time,Points:1\n0,abc\n")); err == nil {
		t.Error("expected error for non-numeric height")
	}
}

func TestHeightSeriesFitToWaveFile(t *testing.T) {
	var b strings.Builder
	b.WriteString("Time,Points:0,Points:1,Points:2\n")
	for i := range 200 {
		tt := float64(i) * 0.05
		eta := 0.2 * math.Sin(2*math.Pi*tt)
		// Two contour points per timestep straddle the surface.
		fmt.Fprintf(&b, "%g,0,%g,0\n%g,0,%g,0\n", tt, eta-0.01, tt, eta+0.01)
	}

	path := filepath.Join(t.TempDir(), "line.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := ParseHeightCSVFromPath(path)
	if err != nil {
		t.Fatalf("ParseHeightCSVFromPath failed: %v", err)
	}
	res, err := s.Fit(wave.DefaultFitOptions())
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if math.Abs(res.Frequency-1) > 1e-9 {
		t.Errorf("expected 1 Hz, got %v", res.Frequency)
	}

	set, err := wave.NewSetFromComponents([]wave.Component{res.Component}, 9.81)
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "fitted.json")
	if err := SaveWaveFile(out, WaveFileFromSet(set)); err != nil {
		t.Fatalf("SaveWaveFile failed: %v", err)
	}

	loaded, err := LoadWaveSet(out)
	if err != nil {
		t.Fatalf("LoadWaveSet failed: %v", err)
	}
	if loaded.Len() != 1 || math.Abs(loaded.Component(0).Amplitude-0.2) > 1e-3 {
		t.Errorf("unexpected fitted set: %+v", loaded.Components())
	}
}
