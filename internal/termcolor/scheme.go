package termcolor

import "github.com/phyten/lumen/internal/colorutil"

type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

// darkThreshold splits the luminance range. The boundary belongs to the
// light side: exactly 0.5 classifies as light.
const darkThreshold = 0.5

// String returns the token printed on stdout for this scheme.
func (s Scheme) String() string {
	switch s {
	case SchemeDark:
		return "dark"
	case SchemeLight:
		return "light"
	default:
		return "unknown"
	}
}

// ExitCode maps the scheme to the process exit status: 0 when the
// background was classified, 2 when it could not be determined.
func (s Scheme) ExitCode() int {
	if s == SchemeUnknown {
		return 2
	}
	return 0
}

// ClassifyLuminance buckets a relative luminance into dark or light.
// It never yields SchemeUnknown; unknown comes only from failure paths
// upstream of any luminance computation.
func ClassifyLuminance(lum float64) Scheme {
	if lum < darkThreshold {
		return SchemeDark
	}
	return SchemeLight
}

// ClassifyRGB classifies a background color by its WCAG relative luminance.
func ClassifyRGB(rgb colorutil.RGB) Scheme {
	return ClassifyLuminance(colorutil.Luminance(rgb))
}
