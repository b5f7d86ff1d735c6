package models

import "fmt"

type Quadrant string

const (
	QuadrantNotUrgentImportant    Quadrant = "notUrgent-important"
	QuadrantUrgentImportant       Quadrant = "urgent-important"
	QuadrantNotUrgentNotImportant Quadrant = "notUrgent-notImportant"
	QuadrantUrgentNotImportant    Quadrant = "urgent-notImportant"
)

type QuadrantInfo struct {
	Key  Quadrant `json:"key"`
	Name string   `json:"name"`
	Hint string   `json:"hint"`
}

// Quadrants lists the four fixed categories in display order.
var Quadrants = []QuadrantInfo{
	{Key: QuadrantNotUrgentImportant, Name: "Important, not urgent", Hint: "plan it: invest time before it turns urgent"},
	{Key: QuadrantUrgentImportant, Name: "Urgent and important", Hint: "do it now"},
	{Key: QuadrantNotUrgentNotImportant, Name: "Neither urgent nor important", Hint: "drop it or keep it small"},
	{Key: QuadrantUrgentNotImportant, Name: "Urgent, not important", Hint: "delegate or replace it"},
}

func (q Quadrant) Valid() bool {
	_, ok := LookupQuadrant(q)
	return ok
}

func LookupQuadrant(q Quadrant) (QuadrantInfo, bool) {
	for _, info := range Quadrants {
		if info.Key == q {
			return info, true
		}
	}
	return QuadrantInfo{}, false
}

func ParseQuadrant(s string) (Quadrant, error) {
	q := Quadrant(s)
	if !q.Valid() {
		return "", fmt.Errorf("unknown quadrant %q", s)
	}
	return q, nil
}
