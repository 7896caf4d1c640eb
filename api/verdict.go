package api

import "fmt"

// Verdict is the classification of a single test attempt or of a whole session.
type Verdict string

const (
	OK Verdict = "OK" // accepted
	TL Verdict = "TL" // time limit
	ML Verdict = "ML" // memory limit
	IL Verdict = "IL" // idleness limit
	WA Verdict = "WA" // wrong answer
	PE Verdict = "PE" // presentation error
	RE Verdict = "RE" // runtime error
	CE Verdict = "CE" // compilation error
)

var verdicts = []Verdict{OK, TL, ML, IL, WA, PE, RE, CE}

// IsLimit reports whether the verdict was produced by a resource limit breach.
func (v Verdict) IsLimit() bool {
	return v == TL || v == ML || v == IL
}

func (v Verdict) Valid() bool {
	for _, known := range verdicts {
		if v == known {
			return true
		}
	}
	return false
}

func (v *Verdict) UnmarshalText(text []byte) error {
	parsed := Verdict(text)
	if !parsed.Valid() {
		return fmt.Errorf("unknown verdict %q", string(text))
	}
	*v = parsed
	return nil
}
