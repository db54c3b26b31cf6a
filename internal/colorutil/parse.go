package colorutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrParse reports a reply payload that matched no known color grammar or
// carried invalid component values. Callers distinguish parse failures
// from device errors with errors.Is; the sub-reason only matters for
// diagnostics.
var ErrParse = errors.New("unrecognized color format")

var rgbFuncRe = regexp.MustCompile(`^rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)$`)

// ParseColor converts a terminal color payload into an RGB triple.
// Grammars are tried by structural prefix, in order:
//
//  1. rgb:RRRR/GGGG/BBBB — X11 style, 1-4 hex digits per component
//  2. rgba:RRRR/GGGG/BBBB/AAAA — as above, alpha parsed then discarded
//  3. #RRGGBB or #RRGGBBAA — 2 hex digits per component, alpha discarded
//  4. rgb(R, G, B) — decimal components in 0-255
//
// Either slash form accepts 3 or 4 components. The triple is complete or
// the parse fails; no partial results.
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "rgb:") || strings.HasPrefix(s, "rgba:") {
		_, rest, _ := strings.Cut(s, ":")
		parts := strings.Split(rest, "/")
		if len(parts) != 3 && len(parts) != 4 {
			return RGB{}, fmt.Errorf("%w: expected 3 or 4 components, got %d", ErrParse, len(parts))
		}
		var ch [3]uint8
		for i, part := range parts {
			v, err := hexChannel(part)
			if err != nil {
				return RGB{}, err
			}
			if i < 3 {
				ch[i] = v
			}
		}
		return RGB{ch[0], ch[1], ch[2]}, nil
	}

	if strings.HasPrefix(s, "#") && (len(s) == 7 || len(s) == 9) {
		var ch [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
			if err != nil {
				return RGB{}, fmt.Errorf("%w: bad hex digits in %q", ErrParse, s)
			}
			ch[i] = uint8(v)
		}
		return RGB{ch[0], ch[1], ch[2]}, nil
	}

	if m := rgbFuncRe.FindStringSubmatch(s); m != nil {
		var ch [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(m[i+1], 10, 8)
			if err != nil {
				return RGB{}, fmt.Errorf("%w: decimal component %q out of range", ErrParse, m[i+1])
			}
			ch[i] = uint8(v)
		}
		return RGB{ch[0], ch[1], ch[2]}, nil
	}

	return RGB{}, fmt.Errorf("%w: %q", ErrParse, s)
}

// hexChannel scales a 1-4 digit hex component down to 8 bits. The digit
// count encodes the component's bit depth (4, 8, 12 or 16 bits); the most
// significant 8 bits survive, so a single digit repeats (f -> ff).
func hexChannel(hex string) (uint8, error) {
	if len(hex) == 0 || len(hex) > 4 {
		return 0, fmt.Errorf("%w: hex component %q must be 1-4 digits", ErrParse, hex)
	}
	n, err := strconv.ParseUint(hex, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid hex component %q", ErrParse, hex)
	}
	switch len(hex) {
	case 1:
		return uint8(n * 17), nil
	case 2:
		return uint8(n), nil
	case 3:
		return uint8(n >> 4), nil
	default:
		return uint8(n >> 8), nil
	}
}
