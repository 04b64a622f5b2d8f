package formats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tidewater/pkg/wave"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Wave file errors.
var (
	ErrUnknownFormat = errors.New("unknown wave file format")
	ErrWrongModel    = errors.New("unsupported wave model")
)

// ModelGerstner is the model name written by this package.
const ModelGerstner = "gerstner"

// WaveFileFormat selects the encoding of a wave file.
type WaveFileFormat int

const (
	FormatJSON WaveFileFormat = iota
	FormatYAML
)

// String returns the format name.
func (f WaveFileFormat) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// DetectWaveFileFormat picks the format from the file extension.
func DetectWaveFileFormat(path string) (WaveFileFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// WaveFile is the on-disk wave configuration:
//
//	{"model": "gerstner", "gravity": 9.81, "waves": [{"dir_x": 1, "dir_z": 0, ...}]}
type WaveFile struct {
	Model   string        `json:"model" yaml:"model"`
	Gravity float64       `json:"gravity" yaml:"gravity"`
	Waves   []wave.Record `json:"waves" yaml:"waves"`
}

// ParseWaveFile decodes a wave file. An empty model is accepted as gerstner.
func ParseWaveFile(data []byte, format WaveFileFormat) (*WaveFile, error) {
	var wf WaveFile
	var err error

	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &wf)
	case FormatYAML:
		err = yaml.Unmarshal(data, &wf)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s wave file: %w", format, err)
	}

	if wf.Model != "" && !strings.EqualFold(wf.Model, ModelGerstner) {
		return nil, fmt.Errorf("%w: %q", ErrWrongModel, wf.Model)
	}

	return &wf, nil
}

// ParseWaveFileFromPath reads and decodes a wave file from disk.
func ParseWaveFileFromPath(path string) (*WaveFile, error) {
	format, err := DetectWaveFileFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading wave file: %w", err)
	}
	return ParseWaveFile(data, format)
}

// LoadWaveSet reads a wave file and validates it into a wave set.
func LoadWaveSet(path string, opts ...wave.Option) (*wave.Set, error) {
	wf, err := ParseWaveFileFromPath(path)
	if err != nil {
		return nil, err
	}

	set, err := wf.WaveSet(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// WaveSet validates the file contents into a wave set.
func (wf *WaveFile) WaveSet(opts ...wave.Option) (*wave.Set, error) {
	return wave.NewSet(wf.Waves, wf.Gravity, opts...)
}

// WaveFileFromSet builds a wave file describing set.
func WaveFileFromSet(set *wave.Set) *WaveFile {
	return &WaveFile{
		Model:   ModelGerstner,
		Gravity: set.Gravity(),
		Waves:   set.Records(),
	}
}

// Marshal encodes the wave file. JSON output is indented.
func (wf *WaveFile) Marshal(format WaveFileFormat) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(wf, "", "  ")
	case FormatYAML:
		return yaml.Marshal(wf)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// SaveWaveFile writes the wave file to path, choosing the format from the extension.
func SaveWaveFile(path string, wf *WaveFile) error {
	format, err := DetectWaveFileFormat(path)
	if err != nil {
		return err
	}

	data, err := wf.Marshal(format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
