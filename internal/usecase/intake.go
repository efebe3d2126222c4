package usecase

import (
	"fmt"
	"strings"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// ProfileIntake turns a raw ProfileDraft into a ProfilePayload or a field-scoped validation error.
type ProfileIntake struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewProfileIntake(validate *validator.Validate, now func() time.Time) *ProfileIntake {
	if now == nil {
		now = time.Now
	}
	return &ProfileIntake{validate: validate, now: now}
}

// NormalizeProfileDraft validates the draft and converts it. Nothing is written on failure.
func (in *ProfileIntake) NormalizeProfileDraft(draft *domain.ProfileDraft) (*domain.ProfilePayload, error) {
	if draft == nil {
		return nil, apperror.BadRequest("Invalid request body")
	}
	trimDraft(draft)

	errs := map[string]string{}
	if err := in.validate.Struct(draft); err != nil {
		for k, v := range validation.FieldErrors(err) {
			errs[k] = v
		}
	}

	details, typeErrs := domain.BuildCandidateTypeDetails(draft)
	for k, v := range typeErrs {
		errs[k] = v
	}

	payload := &domain.ProfilePayload{
		Details: details,
		Skills:  draft.Skills,
		Bio:     draft.Bio,
		Contact: draft.Contact,
	}
	if draft.YearsOfExperience != nil {
		payload.YearsOfExperience = *draft.YearsOfExperience
	}

	today := truncateDay(in.now())
	if dob, ok := parseDate(draft.DateOfBirth); ok {
		if dob.After(today) {
			setOnce(errs, "date_of_birth", "must not be in the future")
		}
		payload.DateOfBirth = dob
	}

	payload.Educations = make([]domain.Education, 0, len(draft.Educations))
	for _, e := range draft.Educations {
		completion, _ := parseDate(e.CompletionDate)
		edu := domain.Education{
			Degree:         e.Degree,
			Specialization: e.Specialization,
			Institution:    e.Institution,
			CompletionDate: completion,
		}
		if e.ID != nil {
			edu.ID = *e.ID
		}
		if e.CGPA != nil {
			edu.CGPA = *e.CGPA
		}
		payload.Educations = append(payload.Educations, edu)
	}

	payload.Certifications = make([]domain.Certification, 0, len(draft.Certifications))
	for i, c := range draft.Certifications {
		issued, _ := parseDate(c.IssueDate)
		cert := domain.Certification{
			Name:           c.Name,
			IssuingCompany: c.IssuingCompany,
			IssueDate:      issued,
		}
		if c.ID != nil {
			cert.ID = *c.ID
		}
		if exp, ok := parseDate(c.ExpirationDate); ok {
			if !issued.IsZero() && exp.Before(issued) {
				setOnce(errs, fmt.Sprintf("certifications[%d].expiration_date", i), "must not be before the issue date")
			}
			cert.ExpirationDate = &exp
		}
		payload.Certifications = append(payload.Certifications, cert)
	}

	payload.WorkExperiences = make([]domain.WorkExperience, 0, len(draft.WorkExperiences))
	for i, w := range draft.WorkExperiences {
		start, startOK := parseDate(w.StartDate)
		work := domain.WorkExperience{
			CompanyName:      w.CompanyName,
			Position:         w.Position,
			StartDate:        start,
			CurrentlyWorking: w.CurrentlyWorking,
			Description:      w.Description,
		}
		if w.ID != nil {
			work.ID = *w.ID
		}

		field := fmt.Sprintf("work_experiences[%d].end_date", i)
		if startOK && start.After(today) {
			setOnce(errs, fmt.Sprintf("work_experiences[%d].start_date", i), "must not be in the future")
		}
		if !w.CurrentlyWorking {
			end, ok := parseDate(w.EndDate)
			switch {
			case w.EndDate == "":
				setOnce(errs, field, "is required unless currently working")
			case ok && startOK && end.Before(start):
				setOnce(errs, field, "must not be before the start date")
			case ok:
				work.EndDate = &end
			}
		}
		payload.WorkExperiences = append(payload.WorkExperiences, work.Normalized())
	}

	if len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}
	return payload, nil
}

// trimDraft trims every free-text field and drops blank or repeated skills.
func trimDraft(d *domain.ProfileDraft) {
	d.CandidateType = strings.TrimSpace(d.CandidateType)
	d.Bio = strings.TrimSpace(d.Bio)
	d.DateOfBirth = strings.TrimSpace(d.DateOfBirth)
	d.Contact = strings.TrimSpace(d.Contact)

	seen := make(map[string]struct{}, len(d.Skills))
	skills := make([]string, 0, len(d.Skills))
	for _, s := range d.Skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		skills = append(skills, s)
	}
	d.Skills = skills

	for i := range d.Educations {
		e := &d.Educations[i]
		e.Degree = strings.TrimSpace(e.Degree)
		e.Specialization = strings.TrimSpace(e.Specialization)
		e.Institution = strings.TrimSpace(e.Institution)
		e.CompletionDate = strings.TrimSpace(e.CompletionDate)
	}
	for i := range d.Certifications {
		c := &d.Certifications[i]
		c.Name = strings.TrimSpace(c.Name)
		c.IssuingCompany = strings.TrimSpace(c.IssuingCompany)
		c.IssueDate = strings.TrimSpace(c.IssueDate)
		c.ExpirationDate = strings.TrimSpace(c.ExpirationDate)
	}
	for i := range d.WorkExperiences {
		w := &d.WorkExperiences[i]
		w.CompanyName = strings.TrimSpace(w.CompanyName)
		w.Position = strings.TrimSpace(w.Position)
		w.StartDate = strings.TrimSpace(w.StartDate)
		w.EndDate = strings.TrimSpace(w.EndDate)
		w.Description = strings.TrimSpace(w.Description)
	}
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// setOnce keeps the first message reported for a field.
func setOnce(errs map[string]string, field, msg string) {
	if _, ok := errs[field]; !ok {
		errs[field] = msg
	}
}
