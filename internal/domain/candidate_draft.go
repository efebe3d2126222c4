package domain

import "strings"

// ProfileDraft is the raw intake form. Every type-specific field is present; only those of the
// selected candidate_type are read.
type ProfileDraft struct {
	CandidateType   string `json:"candidate_type" validate:"required"`
	Gender          string `json:"gender"`
	PwdCategory     string `json:"pwd_category"`
	LgbtqIdentity   string `json:"lgbtq_identity"`
	EmploymentBreak string `json:"employment_break"`

	YearsOfExperience *int                  `json:"years_of_experience" validate:"required,gte=0,lte=70"`
	Skills            []string              `json:"skills" validate:"min=1,max=50,dive,required,max=100"`
	Bio               string                `json:"bio" validate:"max=2000"`
	DateOfBirth       string                `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Contact           string                `json:"contact" validate:"required,min=7,max=50"`
	Educations        []EducationDraft      `json:"educations" validate:"min=1,dive"`
	Certifications    []CertificationDraft  `json:"certifications" validate:"omitempty,dive"`
	WorkExperiences   []WorkExperienceDraft `json:"work_experiences" validate:"omitempty,dive"`
}

type EducationDraft struct {
	ID             *int64   `json:"id,omitempty"`
	Degree         string   `json:"degree" validate:"required,max=100"`
	Specialization string   `json:"specialization" validate:"required,max=100"`
	Institution    string   `json:"institution" validate:"required,max=200"`
	CompletionDate string   `json:"completion_date" validate:"required,datetime=2006-01-02"`
	CGPA           *float64 `json:"cgpa" validate:"required,gte=0,lte=10"`
}

type CertificationDraft struct {
	ID             *int64 `json:"id,omitempty"`
	Name           string `json:"name" validate:"required,max=200"`
	IssuingCompany string `json:"issuing_company" validate:"required,max=200"`
	IssueDate      string `json:"issue_date" validate:"required,datetime=2006-01-02"`
	ExpirationDate string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
}

type WorkExperienceDraft struct {
	ID               *int64 `json:"id,omitempty"`
	CompanyName      string `json:"company_name" validate:"required,max=200"`
	Position         string `json:"position" validate:"required,max=200"`
	StartDate        string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate          string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	CurrentlyWorking bool   `json:"currently_working"`
	Description      string `json:"description" validate:"max=2000"`
}

// BuildCandidateTypeDetails resolves the draft's type-specific fields into the tagged variant.
// It returns field errors keyed by JSON name when the active type's fields are missing or invalid.
func BuildCandidateTypeDetails(d *ProfileDraft) (CandidateTypeDetails, map[string]string) {
	errs := map[string]string{}
	gender := Gender(strings.ToUpper(strings.TrimSpace(d.Gender)))

	requireGender := func() {
		if gender == "" {
			errs["gender"] = "gender is required"
		} else if !gender.Valid() {
			errs["gender"] = "gender must be one of MALE, FEMALE, OTHER"
		}
	}

	var details CandidateTypeDetails
	switch CandidateType(strings.ToUpper(strings.TrimSpace(d.CandidateType))) {
	case CandidateTypeRegular:
		requireGender()
		details = RegularDetails{Gender: gender}

	case CandidateTypePwd:
		requireGender()
		category := PwdCategory(strings.ToUpper(strings.TrimSpace(d.PwdCategory)))
		if category == "" {
			errs["pwd_category"] = "pwd_category is required"
		} else if !category.Valid() {
			errs["pwd_category"] = "pwd_category is not a recognised disability category"
		}
		details = PwdDetails{Gender: gender, PwdCategory: category}

	case CandidateTypeLgbtq:
		identity := LgbtqIdentity(strings.ToUpper(strings.TrimSpace(d.LgbtqIdentity)))
		if identity == "" {
			errs["lgbtq_identity"] = "lgbtq_identity is required"
		} else if !identity.Valid() {
			errs["lgbtq_identity"] = "lgbtq_identity is not a recognised identity"
		}
		details = LgbtqDetails{Identity: identity}

	case CandidateTypeWomenReturning:
		brk := strings.TrimSpace(d.EmploymentBreak)
		if brk == "" {
			errs["employment_break"] = "employment_break is required"
		} else if len(brk) > 2000 {
			errs["employment_break"] = "employment_break must be at most 2000 characters"
		}
		details = WomenReturningDetails{EmploymentBreak: brk}

	default:
		errs["candidate_type"] = "candidate_type must be one of REGULAR, PWD, LGBTQ, WOMEN_RETURNING"
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return details, nil
}
