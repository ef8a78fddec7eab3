package fieldspec

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution is an image size bound in pixels.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dX%d", r.Width, r.Height)
}

// ParseResolution parses "<width>X<height>". A lower-case separator is accepted.
func ParseResolution(s string) (Resolution, error) {
	w, h, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(s)), "X")
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %q", ErrInvalidResolution, s)
	}

	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width < 0 {
		return Resolution{}, fmt.Errorf("%w: bad width in %q", ErrInvalidResolution, s)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height < 0 {
		return Resolution{}, fmt.Errorf("%w: bad height in %q", ErrInvalidResolution, s)
	}

	return Resolution{Width: width, Height: height}, nil
}
