package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type CandidateType string

const (
	CandidateTypeRegular        CandidateType = "REGULAR"
	CandidateTypePwd            CandidateType = "PWD"
	CandidateTypeLgbtq          CandidateType = "LGBTQ"
	CandidateTypeWomenReturning CandidateType = "WOMEN_RETURNING"
)

var CandidateTypes = []CandidateType{
	CandidateTypeRegular,
	CandidateTypePwd,
	CandidateTypeLgbtq,
	CandidateTypeWomenReturning,
}

func (t CandidateType) Valid() bool {
	switch t {
	case CandidateTypeRegular, CandidateTypePwd, CandidateTypeLgbtq, CandidateTypeWomenReturning:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type PwdCategory string

const (
	PwdCategoryVisual       PwdCategory = "VISUAL"
	PwdCategoryHearing      PwdCategory = "HEARING"
	PwdCategorySpeech       PwdCategory = "SPEECH"
	PwdCategoryLocomotor    PwdCategory = "LOCOMOTOR"
	PwdCategoryIntellectual PwdCategory = "INTELLECTUAL"
	PwdCategoryPsychosocial PwdCategory = "PSYCHOSOCIAL"
	PwdCategoryMultiple     PwdCategory = "MULTIPLE"
	PwdCategoryOther        PwdCategory = "OTHER"
)

func (c PwdCategory) Valid() bool {
	switch c {
	case PwdCategoryVisual, PwdCategoryHearing, PwdCategorySpeech, PwdCategoryLocomotor,
		PwdCategoryIntellectual, PwdCategoryPsychosocial, PwdCategoryMultiple, PwdCategoryOther:
		return true
	}
	return false
}

type LgbtqIdentity string

const (
	LgbtqLesbian     LgbtqIdentity = "LESBIAN"
	LgbtqGay         LgbtqIdentity = "GAY"
	LgbtqBisexual    LgbtqIdentity = "BISEXUAL"
	LgbtqTransgender LgbtqIdentity = "TRANSGENDER"
	LgbtqQueer       LgbtqIdentity = "QUEER"
	LgbtqIntersex    LgbtqIdentity = "INTERSEX"
	LgbtqAsexual     LgbtqIdentity = "ASEXUAL"
	LgbtqNonBinary   LgbtqIdentity = "NON_BINARY"
	LgbtqOther       LgbtqIdentity = "OTHER"
)

func (l LgbtqIdentity) Valid() bool {
	switch l {
	case LgbtqLesbian, LgbtqGay, LgbtqBisexual, LgbtqTransgender, LgbtqQueer,
		LgbtqIntersex, LgbtqAsexual, LgbtqNonBinary, LgbtqOther:
		return true
	}
	return false
}

// CandidateTypeDetails is the closed set of per-type attributes.
// Only the four types below implement it.
type CandidateTypeDetails interface {
	Type() CandidateType
	isCandidateTypeDetails()
}

type RegularDetails struct {
	Gender Gender `json:"gender"`
}

type PwdDetails struct {
	Gender      Gender      `json:"gender"`
	PwdCategory PwdCategory `json:"pwd_category"`
}

type LgbtqDetails struct {
	Identity LgbtqIdentity `json:"lgbtq_identity"`
}

// WomenReturningDetails always implies FEMALE.
type WomenReturningDetails struct {
	EmploymentBreak string `json:"employment_break"`
}

func (RegularDetails) Type() CandidateType        { return CandidateTypeRegular }
func (PwdDetails) Type() CandidateType            { return CandidateTypePwd }
func (LgbtqDetails) Type() CandidateType          { return CandidateTypeLgbtq }
func (WomenReturningDetails) Type() CandidateType { return CandidateTypeWomenReturning }

func (RegularDetails) isCandidateTypeDetails()        {}
func (PwdDetails) isCandidateTypeDetails()            {}
func (LgbtqDetails) isCandidateTypeDetails()          {}
func (WomenReturningDetails) isCandidateTypeDetails() {}

// CandidateTypeColumns is the flattened storage form of CandidateTypeDetails.
// Columns that do not belong to the active type are always nil.
type CandidateTypeColumns struct {
	Type            CandidateType
	Gender          *string
	PwdCategory     *string
	LgbtqIdentity   *string
	EmploymentBreak *string
}

func FlattenCandidateTypeDetails(d CandidateTypeDetails) CandidateTypeColumns {
	str := func(s string) *string { return &s }

	switch v := d.(type) {
	case RegularDetails:
		return CandidateTypeColumns{Type: v.Type(), Gender: str(string(v.Gender))}
	case PwdDetails:
		return CandidateTypeColumns{Type: v.Type(), Gender: str(string(v.Gender)), PwdCategory: str(string(v.PwdCategory))}
	case LgbtqDetails:
		return CandidateTypeColumns{Type: v.Type(), LgbtqIdentity: str(string(v.Identity))}
	case WomenReturningDetails:
		return CandidateTypeColumns{Type: v.Type(), Gender: str(string(GenderFemale)), EmploymentBreak: str(v.EmploymentBreak)}
	default:
		return CandidateTypeColumns{}
	}
}

// Details rebuilds the variant from stored columns.
func (c CandidateTypeColumns) Details() (CandidateTypeDetails, error) {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	switch c.Type {
	case CandidateTypeRegular:
		return RegularDetails{Gender: Gender(deref(c.Gender))}, nil
	case CandidateTypePwd:
		return PwdDetails{Gender: Gender(deref(c.Gender)), PwdCategory: PwdCategory(deref(c.PwdCategory))}, nil
	case CandidateTypeLgbtq:
		return LgbtqDetails{Identity: LgbtqIdentity(deref(c.LgbtqIdentity))}, nil
	case CandidateTypeWomenReturning:
		return WomenReturningDetails{EmploymentBreak: deref(c.EmploymentBreak)}, nil
	default:
		return nil, fmt.Errorf("unknown candidate type %q", c.Type)
	}
}

type CandidateProfile struct {
	ID                 string               `json:"id"`
	UserID             string               `json:"user_id"`
	Details            CandidateTypeDetails `json:"-"`
	YearsOfExperience  int                  `json:"years_of_experience"`
	Skills             []string             `json:"skills"`
	Bio                string               `json:"bio"`
	DateOfBirth        time.Time            `json:"date_of_birth"`
	Contact            string               `json:"contact"`
	ResumeKey          *string              `json:"resume_key,omitempty"`
	ResumeURL          *string              `json:"resume_url,omitempty"`
	ResumeURLExpiresAt *time.Time           `json:"resume_url_expires_at,omitempty"`
	Educations         []Education          `json:"educations"`
	Certifications     []Certification      `json:"certifications"`
	WorkExperiences    []WorkExperience     `json:"work_experiences"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`

	// Joined data for list responses
	Email *string `json:"email,omitempty"`
	Name  *string `json:"name,omitempty"`
}

func (p *CandidateProfile) CandidateType() CandidateType {
	if p.Details == nil {
		return ""
	}
	return p.Details.Type()
}

func (p CandidateProfile) MarshalJSON() ([]byte, error) {
	type alias CandidateProfile
	return json.Marshal(struct {
		alias
		CandidateType CandidateType        `json:"candidate_type"`
		TypeDetails   CandidateTypeDetails `json:"type_details"`
	}{
		alias:         alias(p),
		CandidateType: p.CandidateType(),
		TypeDetails:   p.Details,
	})
}

// ProfilePayload is an intake draft after validation and normalization.
type ProfilePayload struct {
	Details           CandidateTypeDetails
	YearsOfExperience int
	Skills            []string
	Bio               string
	DateOfBirth       time.Time
	Contact           string
	Educations        []Education
	Certifications    []Certification
	WorkExperiences   []WorkExperience
}

// Apply copies the payload onto the profile, replacing every scalar and collection.
func (p *ProfilePayload) Apply(profile *CandidateProfile) {
	profile.Details = p.Details
	profile.YearsOfExperience = p.YearsOfExperience
	profile.Skills = p.Skills
	profile.Bio = p.Bio
	profile.DateOfBirth = p.DateOfBirth
	profile.Contact = p.Contact
	profile.Educations = p.Educations
	profile.Certifications = p.Certifications
	profile.WorkExperiences = p.WorkExperiences
}

type CandidateFilter struct {
	CandidateType string
	Search        string
}

type CandidateRepository interface {
	// Create inserts the profile and every child row in one transaction.
	Create(ctx context.Context, profile *CandidateProfile) error
	// Update replaces scalars and reconciles child collections in one transaction.
	Update(ctx context.Context, profile *CandidateProfile) error
	GetByID(ctx context.Context, id string) (*CandidateProfile, error)
	GetByUserID(ctx context.Context, userID string) (*CandidateProfile, error)
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
	UpdateResume(ctx context.Context, id string, key, url *string, expiresAt *time.Time) error
	List(ctx context.Context, filter CandidateFilter, limit, offset int) ([]CandidateProfile, int64, error)
}

type CandidateUsecase interface {
	CreateProfile(ctx context.Context, actor Identity, ownerUserID string, draft *ProfileDraft, resume *UploadedFile) (*CandidateProfile, error)
	UpdateProfile(ctx context.Context, actor Identity, profileID string, draft *ProfileDraft, resume *UploadedFile) (*CandidateProfile, error)
	GetMyProfile(ctx context.Context, actor Identity) (*CandidateProfile, error)
	GetProfile(ctx context.Context, actor Identity, profileID string) (*CandidateProfile, error)
}
