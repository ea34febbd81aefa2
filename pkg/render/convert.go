package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/matzehuels/ontograph/pkg/errors"
)

// Format is a raster or print target reachable from SVG.
type Format string

const (
	PDF Format = "pdf"
	PNG Format = "png"
)

// rsvgBinary is the converter executable, looked up on PATH.
var rsvgBinary = "rsvg-convert"

// Convert turns an SVG into format with rsvg-convert (librsvg). scale only
// applies to PNG; values <= 0 mean 1. The conversion is killed when ctx
// ends. A missing converter fails with an UNSUPPORTED error.
func Convert(ctx context.Context, svg []byte, format Format, scale float64) ([]byte, error) {
	args := []string{"-f", string(format)}
	switch format {
	case PDF:
	case PNG:
		if scale <= 0 {
			scale = 1
		}
		args = append(args, "-z", strconv.FormatFloat(scale, 'f', 2, 64))
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "cannot convert SVG to %q", format)
	}

	if _, err := exec.LookPath(rsvgBinary); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export needs %s from librsvg (brew install librsvg, apt install librsvg2-bin)", format, rsvgBinary)
	}

	cmd := exec.CommandContext(ctx, rsvgBinary, args...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w: %s", rsvgBinary, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}
