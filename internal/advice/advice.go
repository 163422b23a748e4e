// Package advice turns a patient's latest vitals into rule-based lifestyle
// advice.
package advice

import (
	"myhealth-server/internal/i18n"
	"myhealth-server/internal/vitals"
)

// Entry types. The first three reuse the measurement kind strings.
const (
	TypeBloodSugar    = string(vitals.KindBloodSugar)
	TypeBloodPressure = string(vitals.KindBloodPressure)
	TypeWeight        = string(vitals.KindWeight)
	TypeGeneral       = "general"
)

// Thresholds. Values are not unit-tagged here, so the unit is inferred from
// magnitude: sugar above 10 is mg/dL (else g/L), pressure above 30 is mmHg
// (else cmHg).
const (
	sugarUnitCutoff    = 10.0
	sugarLimitMgDL     = 126.0
	sugarLimitGL       = 1.26
	pressureUnitCutoff = 30.0
	pressureLimitMmHg  = 140.0
	pressureLimitCmHg  = 14.0
	weightGainLimitKg  = 0.5
)

// Style is the presentation metadata consumers render each entry with.
type Style struct {
	ColorClass  string `json:"color_class"`
	BgClass     string `json:"bg_class"`
	BorderClass string `json:"border_class"`
	TextClass   string `json:"text_class"`
	Icon        string `json:"icon"`
}

// Entry is one piece of advice.
type Entry struct {
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Message string   `json:"message"`
	ToAvoid []string `json:"to_avoid"`
	ToFavor []string `json:"to_favor"`
	Style
}

// Snapshot holds the latest value per kind. Nil means no reading.
type Snapshot struct {
	BloodSugar     *float64 `json:"glycemie,omitempty"`
	BloodPressure  *float64 `json:"tension,omitempty"`
	Weight         *float64 `json:"poids,omitempty"`
	PreviousWeight *float64 `json:"poids_precedent,omitempty"`
}

// Empty reports whether none of the three current values is present.
func (s Snapshot) Empty() bool {
	return s.BloodSugar == nil && s.BloodPressure == nil && s.Weight == nil
}

var styles = map[string]Style{
	TypeBloodSugar:    {"orange-500", "bg-orange-50", "border-l-orange-500", "text-orange-900", "candy"},
	TypeBloodPressure: {"rose-500", "bg-rose-50", "border-l-rose-500", "text-rose-900", "activity"},
	TypeWeight:        {"blue-500", "bg-blue-50", "border-l-blue-500", "text-blue-900", "scale"},
	TypeGeneral:       {"emerald-500", "bg-emerald-50", "border-l-emerald-500", "text-emerald-900", "check-circle-2"},
}

// Generate evaluates the rules in order: sugar, pressure, weight, then the
// all-clear entry when nothing fired but at least one value was present.
func Generate(s Snapshot, loc i18n.Locale) []Entry {
	entries := []Entry{}

	if s.BloodSugar != nil && sugarHigh(*s.BloodSugar) {
		entries = append(entries, entry(TypeBloodSugar, loc))
	}
	if s.BloodPressure != nil && pressureHigh(*s.BloodPressure) {
		entries = append(entries, entry(TypeBloodPressure, loc))
	}
	if s.Weight != nil && s.PreviousWeight != nil {
		if diff := *s.Weight - *s.PreviousWeight; diff > weightGainLimitKg {
			e := entry(TypeWeight, loc)
			e.Message = i18n.T(loc, "advice.poids.message", diff)
			entries = append(entries, e)
		}
	}

	if len(entries) == 0 && !s.Empty() {
		entries = append(entries, Entry{
			Type:    TypeGeneral,
			Title:   i18n.T(loc, "advice.general.title"),
			Message: i18n.T(loc, "advice.general.message"),
			ToAvoid: []string{},
			ToFavor: []string{},
			Style:   styles[TypeGeneral],
		})
	}
	return entries
}

func sugarHigh(v float64) bool {
	if v > sugarUnitCutoff {
		return v > sugarLimitMgDL
	}
	return v > sugarLimitGL
}

func pressureHigh(v float64) bool {
	if v > pressureUnitCutoff {
		return v > pressureLimitMmHg
	}
	return v > pressureLimitCmHg
}

func entry(typ string, loc i18n.Locale) Entry {
	prefix := "advice." + typ
	return Entry{
		Type:    typ,
		Title:   i18n.T(loc, prefix+".title"),
		Message: i18n.T(loc, prefix+".message"),
		ToAvoid: i18n.List(loc, prefix+".avoid"),
		ToFavor: i18n.List(loc, prefix+".favor"),
		Style:   styles[typ],
	}
}

// Reading is the minimal view of a stored measurement the snapshot needs.
type Reading struct {
	Kind  vitals.Kind
	Value float64
}

// SnapshotFromHistory builds a snapshot from readings ordered newest first:
// the first reading of each kind, and the second weight as the previous one.
func SnapshotFromHistory(history []Reading) Snapshot {
	var s Snapshot
	weights := 0
	for _, r := range history {
		v := r.Value
		switch r.Kind {
		case vitals.KindBloodSugar:
			if s.BloodSugar == nil {
				s.BloodSugar = &v
			}
		case vitals.KindBloodPressure:
			if s.BloodPressure == nil {
				s.BloodPressure = &v
			}
		case vitals.KindWeight:
			switch weights {
			case 0:
				s.Weight = &v
			case 1:
				s.PreviousWeight = &v
			}
			weights++
		}
	}
	return s
}
