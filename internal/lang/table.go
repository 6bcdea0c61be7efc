package lang

import (
	"errors"
	"maps"
)

var commonAbbreviations = []string{
	"Mr.", "Mrs.", "Ms.", "Dr.", "Prof.", "Sr.", "Jr.", "St.", "vs.", "etc.",
	"e.g.", "i.e.", "approx.", "dept.", "est.", "fig.", "inc.", "ltd.", "co.",
	"corp.", "no.", "vol.", "pp.", "jan.", "feb.", "mar.", "apr.", "jun.",
	"jul.", "aug.", "sep.", "sept.", "oct.", "nov.", "dec.", "a.m.", "p.m.",
}

// BuiltinSpecs is the rule data shipped with the binary. Adding a language
// means adding an entry here or under segmentation.languages in config.
var BuiltinSpecs = map[Code]Spec{
	DefaultCode: {
		Shape:         ShapeDefault,
		Abbreviations: []string{"Mr.", "Mrs.", "Ms.", "Dr.", "Prof.", "St.", "vs.", "etc.", "e.g.", "i.e."},
	},
	"en": {
		Shape: ShapeDefault,
		// "no." is ambiguous in English prose
		Abbreviations: without(commonAbbreviations, "no."),
	},
	"de": {
		Shape: ShapeDefault,
		Abbreviations: []string{
			"Dr.", "Prof.", "Hr.", "Fr.", "usw.", "bzw.", "z.B.", "d.h.", "u.a.", "ca.",
			"Nr.", "Str.", "vgl.", "evtl.", "ggf.", "inkl.", "sog.", "Jh.", "etc.",
		},
	},
	"fr": {
		Shape: ShapeDefault,
		Abbreviations: []string{
			"M.", "Mme.", "Mlle.", "Dr.", "Pr.", "etc.", "p.ex.", "c.-à-d.", "env.",
			"av.", "apr.", "no.", "vol.", "St.", "Ste.",
		},
	},
	"es": {
		Shape: ShapeDefault,
		Abbreviations: []string{
			"Sr.", "Sra.", "Srta.", "Dr.", "Dra.", "Ud.", "Uds.", "etc.", "p.ej.",
			"aprox.", "núm.", "pág.", "EE.UU.",
		},
	},
	"it": {
		Shape: ShapeDefault,
		Abbreviations: []string{
			"Sig.", "Sig.ra", "Dott.", "Prof.", "ecc.", "es.", "pag.", "n.", "ca.",
		},
	},
	"pt": {
		Shape: ShapeDefault,
		Abbreviations: []string{
			"Sr.", "Sra.", "Dr.", "Dra.", "Prof.", "etc.", "p.ex.", "pág.", "nº.",
		},
	},
	"nl": {
		Shape: ShapeDefault,
		Abbreviations: []string{
			"dhr.", "mevr.", "dr.", "prof.", "bijv.", "o.a.", "d.w.z.", "enz.", "blz.", "nr.",
		},
	},
	"ru": {
		Shape: ShapeDefault,
		Abbreviations: []string{
			"г.", "гг.", "т.е.", "т.к.", "т.д.", "т.п.", "им.", "ул.", "д.", "стр.", "см.", "проф.", "др.",
		},
	},
	"pl": {
		Shape: ShapeDefault,
		Abbreviations: []string{
			"np.", "tj.", "itd.", "itp.", "m.in.", "ul.", "dr.", "prof.", "nr.", "str.",
		},
	},
	"zh": {Shape: ShapeCJK},
	"ja": {Shape: ShapeCJK},
	"ko": {
		Shape:     ShapeOverride,
		EndMarker: `[.!?。！？]+["'”’)\]]*(?:\s+|$)`,
	},
	"hi": {
		Shape:     ShapeOverride,
		EndMarker: `[।॥.!?]+["'”’)\]]*(?:\s+|$)`,
	},
	"ar": {
		Shape:     ShapeOverride,
		EndMarker: `[.!?؟۔]+["'”’)\]]*(?:\s+|$)`,
	},
}

// Table resolves compiled rules by language code. It is read-only after
// construction and safe for concurrent use.
type Table struct {
	rules map[Code]Rules
}

// NewTable compiles the built-in specs merged with extra (extra wins on
// key collision). It always returns a usable table; entries that failed to
// compile are kept in degraded form and reported in the joined error.
func NewTable(extra map[Code]Spec) (*Table, error) {
	specs := maps.Clone(BuiltinSpecs)
	for code, spec := range extra {
		key := code
		if key != DefaultCode {
			key = Normalize(string(code))
		}
		specs[key] = spec
	}

	t := &Table{rules: make(map[Code]Rules, len(specs))}
	var errs []error
	for code, spec := range specs {
		r, err := Compile(code, spec)
		if err != nil {
			errs = append(errs, err)
		}
		t.rules[code] = r
	}
	return t, errors.Join(errs...)
}

// RulesFor returns the rules for code, falling back to the default set.
// It never fails.
func (t *Table) RulesFor(code Code) Rules {
	if t == nil {
		return Rules{code: DefaultCode, shape: ShapeDefault}
	}
	if r, ok := t.rules[Normalize(string(code))]; ok {
		return r
	}
	return t.rules[DefaultCode]
}

var builtin, _ = NewTable(nil)

// Builtin returns the table compiled from BuiltinSpecs
func Builtin() *Table {
	return builtin
}

func without(list []string, drop string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}
