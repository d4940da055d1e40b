package stage

import (
	"encoding/json"
	"strings"
)

// Stage is the canonical pipeline stage. Ordered; do not reorder the
// constants, Advance walks them by index.
type Stage int

const (
	Prospecting Stage = iota
	Qualification
	Discovery
	PresentationPOC
	Negotiation
	ClosedWon
	ClosedLost
)

var labels = map[Stage]string{
	Prospecting:     "Prospecting",
	Qualification:   "Qualification",
	Discovery:       "Discovery",
	PresentationPOC: "Presentation/POC",
	Negotiation:     "Negotiation",
	ClosedWon:       "Closed Won",
	ClosedLost:      "Closed Lost",
}

// Fixed display probability per stage, percent. Non-decreasing along the
// open path; 100 only at Closed Won, 0 at Closed Lost.
var probabilities = map[Stage]int{
	Prospecting:     10,
	Qualification:   25,
	Discovery:       40,
	PresentationPOC: 60,
	Negotiation:     80,
	ClosedWon:       100,
	ClosedLost:      0,
}

func (s Stage) String() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return labels[Prospecting]
}

func (s Stage) Probability() int {
	return probabilities[s]
}

func (s Stage) IsTerminal() bool {
	return s == ClosedWon || s == ClosedLost
}

// Next returns the following stage on the open path. ok=false for
// Negotiation (closing needs an explicit won/lost decision) and terminals.
func (s Stage) Next() (Stage, bool) {
	if s.IsTerminal() || s == Negotiation {
		return s, false
	}
	return s + 1, true
}

// Ordered lists every stage in progression order, terminals last.
func Ordered() []Stage {
	return []Stage{Prospecting, Qualification, Discovery, PresentationPOC, Negotiation, ClosedWon, ClosedLost}
}

// Open lists the non-terminal stages in order.
func Open() []Stage {
	return []Stage{Prospecting, Qualification, Discovery, PresentationPOC, Negotiation}
}

func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Stage) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	st, _ := Normalize(raw)
	*s = st
	return nil
}

// Normalize maps free-form and legacy stage spellings onto the canonical
// enum. ok=false means the label was not recognized and the record should be
// flagged for manual correction; the fallback stage is Prospecting.
func Normalize(raw string) (Stage, bool) {
	key := strings.ToLower(raw)
	for _, r := range []string{" ", "\t", "-", "_", "/", "\\", "."} {
		key = strings.ReplaceAll(key, r, "")
	}
	if s, ok := aliases[key]; ok {
		return s, true
	}
	return Prospecting, false
}

// Keys are lowercased with separators stripped, so historical variants like
// "Presentation / POC" and "closed-won" collapse to one entry.
var aliases = map[string]Stage{
	"prospecting":       Prospecting,
	"prospect":          Prospecting,
	"new":               Prospecting,
	"qualification":     Qualification,
	"qualified":         Qualification,
	"qualify":           Qualification,
	"discovery":         Discovery,
	"approachdiscovery": Discovery,
	"approach":          Discovery,
	"presentationpoc":   PresentationPOC,
	"presentation":      PresentationPOC,
	"poc":               PresentationPOC,
	"demo":              PresentationPOC,
	"negotiation":       Negotiation,
	"negotiating":       Negotiation,
	"closedwon":         ClosedWon,
	"won":               ClosedWon,
	"closedlost":        ClosedLost,
	"lost":              ClosedLost,
}
