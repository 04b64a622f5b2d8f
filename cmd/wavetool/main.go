// wavetool is a CLI utility for creating and inspecting Gerstner wave files.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/Faultbox/tidewater/pkg/formats"
	tmath "github.com/Faultbox/tidewater/pkg/math"
	"github.com/Faultbox/tidewater/pkg/wave"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "info":
		cmdInfo(args)
	case "sample":
		cmdSample(args)
	case "convert":
		cmdConvert(args)
	case "fit":
		cmdFit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`wavetool - Gerstner wave file utility

Usage:
  wavetool <command> [options]

Commands:
  generate [-seed N] [-count N] <out>   Generate a reproducible wave set
  info [-strict] <waves>                Show wave set summary
  sample <waves> <x> <z> <t>            Displace the world point (x, 0, z) at time t
  convert <in> <out>                    Convert between .json and .yaml
  fit [-wavelength L] <csv> <out>       Fit a wave to a ParaView height-over-time CSV

Examples:
  wavetool generate -seed 7 -count 8 waves.json
  wavetool info waves.json
  wavetool sample waves.json 3.5 -2 10
  wavetool convert waves.json waves.yaml
  wavetool fit -x 5 -z 2 line_over_time.csv fitted.json`)
}

func cmdGenerate(args []string) {
	defaults := wave.DefaultGenerateOptions()

	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	seed := fs.Uint64("seed", defaults.Seed, "Random seed")
	count := fs.Int("count", defaults.Count, "Number of wave components")
	prevailing := fs.Float64("dir", defaults.PrevailingDegrees, "Prevailing direction in degrees")
	spread := fs.Float64("spread", defaults.SpreadDegrees, "Direction spread in degrees")
	gravity := fs.Float64("gravity", defaults.Gravity, "Gravity")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: wavetool generate [-seed N] [-count N] <out.json|out.yaml>")
		os.Exit(1)
	}

	opts := defaults
	opts.Seed = *seed
	opts.Count = *count
	opts.PrevailingDegrees = *prevailing
	opts.SpreadDegrees = *spread
	opts.Gravity = *gravity

	set, err := wave.Generate(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := formats.SaveWaveFile(fs.Arg(0), formats.WaveFileFromSet(set)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s with %d waves (seed %d)\n", fs.Arg(0), set.Len(), opts.Seed)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	strict := fs.Bool("strict", false, "Reject malformed components")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: wavetool info [-strict] <waves>")
		os.Exit(1)
	}

	set := loadSet(fs.Arg(0), *strict)

	fmt.Printf("File:       %s\n", fs.Arg(0))
	fmt.Printf("Waves:      %d\n", set.Len())
	fmt.Printf("Gravity:    %.3f\n", set.Gravity())
	fmt.Printf("Max height: %.3f\n", set.MaxHeight())
	fmt.Println()
	fmt.Printf("  %-3s %-15s %8s %9s %8s %8s %7s %7s\n", "#", "direction", "amp", "length", "k", "omega", "period", "steep")

	for i, c := range set.Components() {
		d := wave.UnitDirection(c.Direction)
		k := wave.Wavenumber(c.Wavelength)
		omega := wave.AngularFrequency(k, c.Speed, set.Gravity())
		period := math.Inf(1)
		if omega > 0 {
			period = 2 * math.Pi / omega
		}
		fmt.Printf("  %-3d (%6.3f,%6.3f) %8.3f %9.3f %8.3f %8.3f %7.2f %7.2f\n",
			i, d.X, d.Y, c.Amplitude, c.Wavelength, k, omega, period, wave.ClampSteepness(c.Steepness))
	}
}

func cmdSample(args []string) {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 4 {
		fmt.Fprintln(os.Stderr, "Usage: wavetool sample <waves> <x> <z> <t>")
		os.Exit(1)
	}

	set := loadSet(fs.Arg(0), false)

	var vals [3]float64
	for i := range vals {
		v, err := strconv.ParseFloat(fs.Arg(i+1), 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid number %q: %v\n", fs.Arg(i+1), err)
			os.Exit(1)
		}
		vals[i] = v
	}
	x, z, t := vals[0], vals[1], vals[2]

	p := tmath.Vec3{X: x, Z: z}
	d := wave.Displace(p, set, t)
	fmt.Printf("Rest:      (%.4f, %.4f, %.4f)\n", p.X, p.Y, p.Z)
	fmt.Printf("Displaced: (%.4f, %.4f, %.4f)\n", d.X, d.Y, d.Z)
	fmt.Printf("Height:    %.4f\n", wave.Height(set, x, z, t))
}

func cmdConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: wavetool convert <in> <out>")
		os.Exit(1)
	}

	wf, err := formats.ParseWaveFileFromPath(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if wf.Model == "" {
		wf.Model = formats.ModelGerstner
	}

	if err := formats.SaveWaveFile(fs.Arg(1), wf); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Converted: %s -> %s (%d waves)\n", fs.Arg(0), fs.Arg(1), len(wf.Waves))
}

func cmdFit(args []string) {
	defaults := wave.DefaultFitOptions()

	fs := flag.NewFlagSet("fit", flag.ExitOnError)
	x := fs.Float64("x", 0, "World x of the sampled line")
	z := fs.Float64("z", 0, "World z of the sampled line")
	dir := fs.Float64("dir", 0, "Direction of travel in degrees")
	wavelength := fs.Float64("wavelength", 0, "Wavelength (0 derives it from dispersion)")
	steepness := fs.Float64("steepness", defaults.Steepness, "Steepness")
	gravity := fs.Float64("gravity", defaults.Gravity, "Gravity")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: wavetool fit [-x X] [-z Z] [-dir DEG] [-wavelength L] <csv> <out.json|out.yaml>")
		os.Exit(1)
	}

	series, err := formats.ParseHeightCSVFromPath(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rad := *dir * math.Pi / 180
	opts := defaults
	opts.Position = tmath.Vec2{X: *x, Y: *z}
	opts.Direction = tmath.Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
	opts.Wavelength = *wavelength
	opts.Steepness = *steepness
	opts.Gravity = *gravity

	res, err := series.Fit(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fitting %s: %v\n", fs.Arg(0), err)
		os.Exit(1)
	}

	set, err := wave.NewSetFromComponents([]wave.Component{res.Component}, opts.Gravity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := formats.SaveWaveFile(fs.Arg(1), formats.WaveFileFromSet(set)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	c := res.Component
	fmt.Printf("Timesteps:  %d\n", series.Len())
	fmt.Printf("Mean level: %.4f\n", res.MeanLevel)
	fmt.Printf("Frequency:  %.4f Hz (omega %.4f)\n", res.Frequency, 2*math.Pi*res.Frequency)
	fmt.Printf("Amplitude:  %.4f\n", c.Amplitude)
	fmt.Printf("Wavelength: %.4f\n", c.Wavelength)
	fmt.Printf("Phase:      %.4f\n", c.Phase)
	fmt.Printf("Wrote %s\n", fs.Arg(1))
}

func loadSet(path string, strict bool) *wave.Set {
	policy := wave.Lenient
	if strict {
		policy = wave.Strict
	}

	set, err := formats.LoadWaveSet(path, wave.WithPolicy(policy))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return set
}
