package domain

import (
	"strings"
	"time"
)

type Education struct {
	ID             int64     `json:"id"`
	CandidateID    string    `json:"candidate_id"`
	Degree         string    `json:"degree"`
	Specialization string    `json:"specialization"`
	Institution    string    `json:"institution"`
	CompletionDate time.Time `json:"completion_date"`
	CGPA           float64   `json:"cgpa"`
}

type Certification struct {
	ID             int64      `json:"id"`
	CandidateID    string     `json:"candidate_id"`
	Name           string     `json:"name"`
	IssuingCompany string     `json:"issuing_company"`
	IssueDate      time.Time  `json:"issue_date"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

type WorkExperience struct {
	ID               int64      `json:"id"`
	CandidateID      string     `json:"candidate_id"`
	CompanyName      string     `json:"company_name"`
	Position         string     `json:"position"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	CurrentlyWorking bool       `json:"currently_working"`
	Description      string     `json:"description"`
}

// IsOngoing reports whether the position is current. A stale EndDate never overrides the flag.
func (w WorkExperience) IsOngoing() bool {
	return w.CurrentlyWorking
}

// EffectiveEnd returns now for ongoing positions and the stored end date otherwise.
// A finished position without an end date yields the zero time.
func (w WorkExperience) EffectiveEnd(now time.Time) time.Time {
	if w.IsOngoing() {
		return now
	}
	if w.EndDate == nil {
		return time.Time{}
	}
	return *w.EndDate
}

// Normalized drops the end date of an ongoing position.
func (w WorkExperience) Normalized() WorkExperience {
	if w.CurrentlyWorking {
		w.EndDate = nil
	}
	return w
}

// ChildEntity is an owned row of the candidate aggregate.
type ChildEntity interface {
	EntityID() int64
	NaturalKey() string
}

func (e Education) EntityID() int64      { return e.ID }
func (c Certification) EntityID() int64  { return c.ID }
func (w WorkExperience) EntityID() int64 { return w.ID }

func (e Education) NaturalKey() string {
	return naturalKey(e.Degree, e.Specialization, e.Institution, e.CompletionDate.Format(time.DateOnly))
}

func (c Certification) NaturalKey() string {
	return naturalKey(c.Name, c.IssuingCompany, c.IssueDate.Format(time.DateOnly))
}

func (w WorkExperience) NaturalKey() string {
	return naturalKey(w.CompanyName, w.Position, w.StartDate.Format(time.DateOnly))
}

func naturalKey(parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "|")
}

// ReconcilePlan is the set difference between persisted and desired child rows.
type ReconcilePlan[T ChildEntity] struct {
	Insert []T
	Update []T
	Delete []int64
}

func (p ReconcilePlan[T]) Empty() bool {
	return len(p.Insert) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

// PlanReconcile computes the writes that turn existing into desired.
//
// A desired entry is matched to a persisted row by its id first, then by natural key among
// rows not yet claimed. Matched entries become updates carrying the persisted id, unmatched
// ones become inserts, and unclaimed persisted rows are deleted. withID stamps the id onto
// an entry. Replaying the same desired list against the result produces only updates.
func PlanReconcile[T ChildEntity](existing, desired []T, withID func(T, int64) T) ReconcilePlan[T] {
	var plan ReconcilePlan[T]

	byID := make(map[int64]int, len(existing))
	for i, e := range existing {
		byID[e.EntityID()] = i
	}
	claimed := make([]bool, len(existing))
	matched := make([]int, len(desired))

	// Pass 1: explicit ids
	for i, d := range desired {
		matched[i] = -1
		if d.EntityID() == 0 {
			continue
		}
		if idx, ok := byID[d.EntityID()]; ok && !claimed[idx] {
			claimed[idx] = true
			matched[i] = idx
		}
	}

	// Pass 2: natural keys for entries that carried no usable id
	for i, d := range desired {
		if matched[i] >= 0 {
			continue
		}
		key := d.NaturalKey()
		for idx, e := range existing {
			if !claimed[idx] && e.NaturalKey() == key {
				claimed[idx] = true
				matched[i] = idx
				break
			}
		}
	}

	for i, d := range desired {
		if idx := matched[i]; idx >= 0 {
			plan.Update = append(plan.Update, withID(d, existing[idx].EntityID()))
		} else {
			plan.Insert = append(plan.Insert, withID(d, 0))
		}
	}

	for idx, e := range existing {
		if !claimed[idx] {
			plan.Delete = append(plan.Delete, e.EntityID())
		}
	}

	return plan
}

func WithEducationID(e Education, id int64) Education                { e.ID = id; return e }
func WithCertificationID(c Certification, id int64) Certification    { c.ID = id; return c }
func WithWorkExperienceID(w WorkExperience, id int64) WorkExperience { w.ID = id; return w }
