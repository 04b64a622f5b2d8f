package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	tmath "github.com/Faultbox/tidewater/pkg/math"
)

// ErrMismatchedNormals is returned when normals do not pair with vertices.
var ErrMismatchedNormals = errors.New("normal count does not match vertex count")

// WriteOBJ writes a triangle mesh as Wavefront OBJ text.
// normals may be nil; indices are zero-based triangle lists.
func WriteOBJ(w io.Writer, vertices, normals []tmath.Vec3, indices []uint32) error {
	if normals != nil && len(normals) != len(vertices) {
		return ErrMismatchedNormals
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# tidewater frame: %d vertices, %d triangles\n", len(vertices), len(indices)/3)

	for _, v := range vertices {
		writeTriple(bw, "v", v)
	}
	for _, n := range normals {
		writeTriple(bw, "vn", n)
	}

	for i := 0; i < len(indices); i += 3 {
		a, b, c := indices[i]+1, indices[i+1]+1, indices[i+2]+1
		if int(indices[i]) >= len(vertices) || int(indices[i+1]) >= len(vertices) || int(indices[i+2]) >= len(vertices) {
			return fmt.Errorf("triangle %d references vertex out of range", i/3)
		}
		if normals != nil {
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
		}
	}

	return bw.Flush()
}

func writeTriple(w *bufio.Writer, tag string, v tmath.Vec3) {
	w.WriteString(tag)
	for _, f := range [3]float64{v.X, v.Y, v.Z} {
		w.WriteByte(' ')
		w.WriteString(strconv.FormatFloat(f, 'f', 6, 64))
	}
	w.WriteByte('\n')
}
