package formats

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/tidewater/pkg/wave"
)

const testWaveJSON = `{
  "model": "gerstner",
  "gravity": 9.81,
  "waves": [
    {"dir_x": 1, "dir_z": 0, "amplitude": 0.3, "wavelength": 12, "phase": 0.5, "speed": 0, "steepness": 0.25},
    {"dir_x": 0.6, "dir_z": 0.8, "amplitude": 0.1, "wavelength": 4, "phase": 1.2, "speed": 1.1, "steepness": 0.3}
  ]
}`

const testWaveYAML = `
model: gerstner
gravity: 9.81
waves:
  - {dir_x: 1, dir_z: 0, amplitude: 0.3, wavelength: 12, phase: 0.5, speed: 0, steepness: 0.25}
  - {dir_x: 0.6, dir_z: 0.8, amplitude: 0.1, wavelength: 4, phase: 1.2, speed: 1.1, steepness: 0.3}
`

func TestParseWaveFile_JSON(t *testing.T) {
	wf, err := ParseWaveFile([]byte(testWaveJSON), FormatJSON)
	if err != nil {
		t.Fatalf("ParseWaveFile failed: %v", err)
	}

	if wf.Model != ModelGerstner {
		t.Errorf("expected model gerstner, got %q", wf.Model)
	}
	if wf.Gravity != 9.81 {
		t.Errorf("expected gravity 9.81, got %v", wf.Gravity)
	}
	if len(wf.Waves) != 2 {
		t.Fatalf("expected 2 waves, got %d", len(wf.Waves))
	}

	w := wf.Waves[1]
	if w.DirX != 0.6 || w.DirZ != 0.8 || w.Amplitude != 0.1 || w.Wavelength != 4 ||
		w.Phase != 1.2 || w.Speed != 1.1 || w.Steepness != 0.3 {
		t.Errorf("unexpected second wave: %+v", w)
	}
}

func TestParseWaveFile_YAMLMatchesJSON(t *testing.T) {
	fromJSON, err := ParseWaveFile([]byte(testWaveJSON), FormatJSON)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	fromYAML, err := ParseWaveFile([]byte(testWaveYAML), FormatYAML)
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}

	if fromJSON.Gravity != fromYAML.Gravity || len(fromJSON.Waves) != len(fromYAML.Waves) {
		t.Fatalf("JSON %+v differs from YAML %+v", fromJSON, fromYAML)
	}
	for i := range fromJSON.Waves {
		if fromJSON.Waves[i] != fromYAML.Waves[i] {
			t.Errorf("wave %d: JSON %+v, YAML %+v", i, fromJSON.Waves[i], fromYAML.Waves[i])
		}
	}
}

func TestParseWaveFile_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format WaveFileFormat
		target error
	}{
		{"broken json", `{"waves": [`, FormatJSON, nil},
		{"broken yaml", "waves:\n  - dir_x: [", FormatYAML, nil},
		{"wrong model", `{"model": "fft", "waves": []}`, FormatJSON, ErrWrongModel},
		{"unknown format", `{}`, WaveFileFormat(9), ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWaveFile([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestWaveFile_NoWaves(t *testing.T) {
	wf, err := ParseWaveFile([]byte(`{"model": "gerstner", "gravity": 9.81}`), FormatJSON)
	if err != nil {
		t.Fatalf("ParseWaveFile failed: %v", err)
	}

	_, err = wf.WaveSet()
	if !errors.Is(err, wave.ErrNoComponents) {
		t.Errorf("expected ErrNoComponents, got %v", err)
	}
}

func TestWaveFile_GravityDefault(t *testing.T) {
	wf, err := ParseWaveFile([]byte(`{"gravity": -1, "waves": [{"dir_x": 1, "amplitude": 1, "wavelength": 2}]}`), FormatJSON)
	if err != nil {
		t.Fatalf("ParseWaveFile failed: %v", err)
	}

	set, err := wf.WaveSet()
	if err != nil {
		t.Fatalf("WaveSet failed: %v", err)
	}
	if set.Gravity() != wave.StandardGravity {
		t.Errorf("expected gravity %v, got %v", wave.StandardGravity, set.Gravity())
	}
}

func TestDetectWaveFileFormat(t *testing.T) {
	tests := []struct {
		path string
		want WaveFileFormat
		ok   bool
	}{
		{"waves.json", FormatJSON, true},
		{"dir/Waves.JSON", FormatJSON, true},
		{"waves.yaml", FormatYAML, true},
		{"waves.yml", FormatYAML, true},
		{"waves.toml", 0, false},
		{"waves", 0, false},
	}

	for _, tt := range tests {
		got, err := DetectWaveFileFormat(tt.path)
		if tt.ok {
			if err != nil || got != tt.want {
				t.Errorf("DetectWaveFileFormat(%q) = %v, %v; want %v", tt.path, got, err, tt.want)
			}
			continue
		}
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("DetectWaveFileFormat(%q) error = %v, want ErrUnknownFormat", tt.path, err)
		}
	}
}

func TestSaveAndLoadWaveSet(t *testing.T) {
	set, err := wave.Generate(wave.DefaultGenerateOptions())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tmpDir := t.TempDir()
	for _, name := range []string{"waves.json", "nested/waves.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmpDir, name)
			if err := SaveWaveFile(path, WaveFileFromSet(set)); err != nil {
				t.Fatalf("SaveWaveFile failed: %v", err)
			}

			loaded, err := LoadWaveSet(path)
			if err != nil {
				t.Fatalf("LoadWaveSet failed: %v", err)
			}

			if loaded.Gravity() != set.Gravity() {
				t.Errorf("gravity: got %v, want %v", loaded.Gravity(), set.Gravity())
			}
			want := set.Records()
			got := loaded.Records()
			if len(got) != len(want) {
				t.Fatalf("expected %d waves, got %d", len(want), len(got))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("wave %d: got %+v, want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestLoadWaveSetMissing(t *testing.T) {
	_, err := LoadWaveSet(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error loading missing file, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadWaveSetStrict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	data := `{"waves": [{"dir_x": 0, "dir_z": 0, "amplitude": 1, "wavelength": 2}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := LoadWaveSet(path); err != nil {
		t.Errorf("lenient load failed: %v", err)
	}
	_, err := LoadWaveSet(path, wave.WithPolicy(wave.Strict))
	if !errors.Is(err, wave.ErrInvalidComponent) {
		t.Errorf("expected ErrInvalidComponent, got %v", err)
	}
}
