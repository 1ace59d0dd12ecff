package export

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/ironsheep/photo-batch-mcp/internal/pipeline"
)

// NameMode selects the output file naming convention.
type NameMode string

const (
	// NameSimple yields "<base>_edited.png".
	NameSimple NameMode = "simple"

	// NameDetail encodes every adjustment into the file name.
	NameDetail NameMode = "detail"
)

// ParseNameMode validates a naming mode. An empty string means NameSimple.
func ParseNameMode(s string) (NameMode, error) {
	switch NameMode(s) {
	case "", NameSimple:
		return NameSimple, nil
	case NameDetail:
		return NameDetail, nil
	default:
		return "", fmt.Errorf("%w: unknown name mode: %s", ErrInvalidArgument, s)
	}
}

var extPattern = regexp.MustCompile(`\.[^.]+$`)

// StripExt removes the last extension from name, if any.
func StripExt(name string) string {
	return extPattern.ReplaceAllString(name, "")
}

// BuildFileName returns the output name for a source file rendered with p.
//
// In detail mode the name is
//
//	<base>_temp<T>_b<B>_ev<EV>_c<C>_g<G>_s<S>[_auto(p<P>-k<K>)].png
//
// T, B, C and S are truncated toward zero. EV has one decimal, G, P and K
// have two. The auto suffix is present only when auto exposure is enabled.
// Any other mode falls back to the simple name.
func BuildFileName(baseName string, p pipeline.Params, mode NameMode) string {
	base := StripExt(baseName)
	if mode != NameDetail {
		return base + "_edited.png"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s_temp%d_b%d_ev%s_c%d_g%s_s%d",
		base,
		truncate(p.Temperature),
		truncate(p.BrightnessPct),
		toFixed(p.ExposureEV, 1),
		truncate(p.ContrastPct),
		toFixed(p.Gamma, 2),
		truncate(p.SaturationPct),
	)
	if p.Auto.Enabled {
		fmt.Fprintf(&sb, "_auto(p%s-k%s)", toFixed(p.Auto.PivotOffset, 2), toFixed(p.Auto.Strength, 2))
	}
	sb.WriteString(".png")
	return sb.String()
}

func truncate(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	return int64(math.Trunc(v))
}

// toFixed formats v with a fixed number of decimals. Exact halves round away
// from zero (strconv rounds them to even). Half-ness is decided on the exact
// binary value of v, so 1.45, stored just below the half, still rounds down.
func toFixed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', digits, 64)
	}
	pow := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil))
	scaled := new(big.Rat).SetFloat64(v)
	scaled.Mul(scaled, pow)
	if scaled.IsInt() || !new(big.Rat).Add(scaled, scaled).IsInt() {
		return strconv.FormatFloat(v, 'f', digits, 64)
	}

	// scaled is n+1/2 exactly; move it half a unit further from zero.
	half := big.NewRat(1, 2)
	if scaled.Sign() < 0 {
		half.Neg(half)
	}
	scaled.Add(scaled, half)
	return scaled.Quo(scaled, pow).FloatString(digits)
}
