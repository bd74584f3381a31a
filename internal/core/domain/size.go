package domain

import (
	"strconv"
	"strings"
)

// Size describes creative dimensions, serialized canonically as
// "{width}x{height}" (e.g. "728x90").
type Size struct {
	width  int
	height int
}

// NewSize parses a "WxH" size token. Both dimensions must be positive
// integers.
func NewSize(value string) (Size, error) {
	w, h, ok := strings.Cut(value, "x")
	if !ok {
		return Size{}, invariantf("size `%s` is not a valid banner size", value)
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return Size{}, invariantf("size `%s` is not a valid banner size", value)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return Size{}, invariantf("size `%s` is not a valid banner size", value)
	}
	return Size{width: width, height: height}, nil
}

func (s Size) Width() int  { return s.width }
func (s Size) Height() int { return s.height }

func (s Size) String() string {
	return strconv.Itoa(s.width) + "x" + strconv.Itoa(s.height)
}
