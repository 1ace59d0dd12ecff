package pipeline

// Patch is a partial Params. A nil field is absent and leaves the underlying
// value alone.
//
// Patches serve two purposes: they carry partial updates from callers, and a
// per-item Patch is the override layer resolved on top of the shared base
// parameters at render time.
type Patch struct {
	BrightnessPct *float64   `json:"brightness_pct,omitempty"`
	Temperature   *float64   `json:"temperature,omitempty"`
	ExposureEV    *float64   `json:"exposure_ev,omitempty"`
	ContrastPct   *float64   `json:"contrast_pct,omitempty"`
	Gamma         *float64   `json:"gamma,omitempty"`
	SaturationPct *float64   `json:"saturation_pct,omitempty"`
	Auto          *AutoPatch `json:"auto_exposure,omitempty"`
}

// AutoPatch is the partial form of AutoExposure.
type AutoPatch struct {
	Enabled     *bool    `json:"enabled,omitempty"`
	PivotOffset *float64 `json:"pivot_offset,omitempty"`
	Strength    *float64 `json:"strength,omitempty"`
}

// Snapshot returns a Patch with every field of p present.
func Snapshot(p Params) *Patch {
	v := p
	return &Patch{
		BrightnessPct: &v.BrightnessPct,
		Temperature:   &v.Temperature,
		ExposureEV:    &v.ExposureEV,
		ContrastPct:   &v.ContrastPct,
		Gamma:         &v.Gamma,
		SaturationPct: &v.SaturationPct,
		Auto: &AutoPatch{
			Enabled:     &v.Auto.Enabled,
			PivotOffset: &v.Auto.PivotOffset,
			Strength:    &v.Auto.Strength,
		},
	}
}

// Empty reports whether no field is present.
func (pt *Patch) Empty() bool {
	if pt == nil {
		return true
	}
	return pt.BrightnessPct == nil && pt.Temperature == nil && pt.ExposureEV == nil &&
		pt.ContrastPct == nil && pt.Gamma == nil && pt.SaturationPct == nil &&
		(pt.Auto == nil || (pt.Auto.Enabled == nil && pt.Auto.PivotOffset == nil && pt.Auto.Strength == nil))
}

// Resolve layers pt over base: each present field wins, absent fields fall
// through. A nil Patch resolves to base unchanged.
func (pt *Patch) Resolve(base Params) Params {
	if pt == nil {
		return base
	}
	p := base
	setFloat(&p.BrightnessPct, pt.BrightnessPct)
	setFloat(&p.Temperature, pt.Temperature)
	setFloat(&p.ExposureEV, pt.ExposureEV)
	setFloat(&p.ContrastPct, pt.ContrastPct)
	setFloat(&p.Gamma, pt.Gamma)
	setFloat(&p.SaturationPct, pt.SaturationPct)
	if a := pt.Auto; a != nil {
		if a.Enabled != nil {
			p.Auto.Enabled = *a.Enabled
		}
		setFloat(&p.Auto.PivotOffset, a.PivotOffset)
		setFloat(&p.Auto.Strength, a.Strength)
	}
	return p
}

// Merge returns a new Patch holding the fields of pt overwritten by the
// present fields of upd. Neither input is modified.
func (pt *Patch) Merge(upd *Patch) *Patch {
	out := &Patch{}
	for _, src := range []*Patch{pt, upd} {
		if src == nil {
			continue
		}
		out.BrightnessPct = pickFloat(out.BrightnessPct, src.BrightnessPct)
		out.Temperature = pickFloat(out.Temperature, src.Temperature)
		out.ExposureEV = pickFloat(out.ExposureEV, src.ExposureEV)
		out.ContrastPct = pickFloat(out.ContrastPct, src.ContrastPct)
		out.Gamma = pickFloat(out.Gamma, src.Gamma)
		out.SaturationPct = pickFloat(out.SaturationPct, src.SaturationPct)
		if src.Auto != nil {
			if out.Auto == nil {
				out.Auto = &AutoPatch{}
			}
			if src.Auto.Enabled != nil {
				v := *src.Auto.Enabled
				out.Auto.Enabled = &v
			}
			out.Auto.PivotOffset = pickFloat(out.Auto.PivotOffset, src.Auto.PivotOffset)
			out.Auto.Strength = pickFloat(out.Auto.Strength, src.Auto.Strength)
		}
	}
	return out
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func pickFloat(cur, v *float64) *float64 {
	if v == nil {
		return cur
	}
	x := *v
	return &x
}
