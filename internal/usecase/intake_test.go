package usecase_test

import (
	"net/http"
	"testing"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/internal/usecase"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var intakeNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func newIntake() *usecase.ProfileIntake {
	return usecase.NewProfileIntake(validation.NewValidator(), func() time.Time { return intakeNow })
}

func baseDraft(t domain.CandidateType) *domain.ProfileDraft {
	d := &domain.ProfileDraft{
		CandidateType:     string(t),
		YearsOfExperience: ptr(4),
		Skills:            []string{"Go", "PostgreSQL"},
		Bio:               "Backend engineer",
		DateOfBirth:       "1994-05-17",
		Contact:           "+91 98765 43210",
		Educations: []domain.EducationDraft{{
			Degree:         "B.Tech",
			Specialization: "Computer Science",
			Institution:    "Anna University",
			CompletionDate: "2016-06-01",
			CGPA:           ptr(8.2),
		}},
	}
	switch t {
	case domain.CandidateTypeRegular:
		d.Gender = "MALE"
	case domain.CandidateTypePwd:
		d.Gender = "FEMALE"
		d.PwdCategory = "LOCOMOTOR"
	case domain.CandidateTypeLgbtq:
		d.LgbtqIdentity = "NON_BINARY"
	case domain.CandidateTypeWomenReturning:
		d.EmploymentBreak = "Three years caring for family"
	}
	return d
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.AppError, got %T", err)
	require.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	return appErr.Fields
}

func TestNormalizeProfileDraft_EachTypeAccepted(t *testing.T) {
	for _, ct := range domain.CandidateTypes {
		t.Run(string(ct), func(t *testing.T) {
			payload, err := newIntake().NormalizeProfileDraft(baseDraft(ct))
			require.NoError(t, err)
			assert.Equal(t, ct, payload.Details.Type())
			assert.Equal(t, 4, payload.YearsOfExperience)
			assert.Len(t, payload.Educations, 1)
			assert.Equal(t, 8.2, payload.Educations[0].CGPA)
		})
	}
}

// Filling every other type's fields never satisfies the active type.
func TestNormalizeProfileDraft_OtherTypesFieldsDoNotSatisfyActiveType(t *testing.T) {
	required := map[domain.CandidateType][]string{
		domain.CandidateTypeRegular:        {"gender"},
		domain.CandidateTypePwd:            {"gender", "pwd_category"},
		domain.CandidateTypeLgbtq:          {"lgbtq_identity"},
		domain.CandidateTypeWomenReturning: {"employment_break"},
	}

	for ct, keys := range required {
		t.Run(string(ct), func(t *testing.T) {
			d := baseDraft(ct)
			d.Gender = "OTHER"
			d.PwdCategory = "VISUAL"
			d.LgbtqIdentity = "GAY"
			d.EmploymentBreak = "Career break"
			for _, k := range keys {
				switch k {
				case "gender":
					d.Gender = ""
				case "pwd_category":
					d.PwdCategory = ""
				case "lgbtq_identity":
					d.LgbtqIdentity = ""
				case "employment_break":
					d.EmploymentBreak = ""
				}
			}

			_, err := newIntake().NormalizeProfileDraft(d)
			require.Error(t, err)
			fields := fieldsOf(t, err)
			for _, k := range keys {
				assert.Contains(t, fields, k)
			}
		})
	}
}

func TestNormalizeProfileDraft_InactiveTypeFieldsAreIgnored(t *testing.T) {
	d := baseDraft(domain.CandidateTypeLgbtq)
	d.PwdCategory = "NOT_A_CATEGORY"
	d.Gender = "??"

	payload, err := newIntake().NormalizeProfileDraft(d)
	require.NoError(t, err)
	assert.Equal(t, domain.LgbtqDetails{Identity: domain.LgbtqNonBinary}, payload.Details)
}

func TestNormalizeProfileDraft_CaseInsensitiveEnums(t *testing.T) {
	d := baseDraft(domain.CandidateTypePwd)
	d.CandidateType = " pwd "
	d.PwdCategory = "visual"
	d.Gender = "female"

	payload, err := newIntake().NormalizeProfileDraft(d)
	require.NoError(t, err)
	assert.Equal(t, domain.PwdDetails{Gender: domain.GenderFemale, PwdCategory: domain.PwdCategoryVisual}, payload.Details)
}

func TestNormalizeProfileDraft_UnknownType(t *testing.T) {
	d := baseDraft(domain.CandidateTypeRegular)
	d.CandidateType = "VETERAN"

	_, err := newIntake().NormalizeProfileDraft(d)
	assert.Contains(t, fieldsOf(t, err), "candidate_type")
}

func TestNormalizeProfileDraft_Skills(t *testing.T) {
	t.Run("trimmed and deduplicated", func(t *testing.T) {
		d := baseDraft(domain.CandidateTypeRegular)
		d.Skills = []string{"  Go ", "go", "", "SQL", "sql "}

		payload, err := newIntake().NormalizeProfileDraft(d)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "SQL"}, payload.Skills)
	})

	t.Run("only blanks is empty", func(t *testing.T) {
		d := baseDraft(domain.CandidateTypeRegular)
		d.Skills = []string{" ", ""}

		_, err := newIntake().NormalizeProfileDraft(d)
		assert.Contains(t, fieldsOf(t, err), "skills")
	})
}

func TestNormalizeProfileDraft_CommonRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *domain.ProfileDraft)
		field  string
	}{
		{"negative experience", func(d *domain.ProfileDraft) { d.YearsOfExperience = ptr(-1) }, "years_of_experience"},
		{"missing experience", func(d *domain.ProfileDraft) { d.YearsOfExperience = nil }, "years_of_experience"},
		{"short contact", func(d *domain.ProfileDraft) { d.Contact = "123" }, "contact"},
		{"bad dob format", func(d *domain.ProfileDraft) { d.DateOfBirth = "17/05/1994" }, "date_of_birth"},
		{"future dob", func(d *domain.ProfileDraft) { d.DateOfBirth = "2030-01-01" }, "date_of_birth"},
		{"no education", func(d *domain.ProfileDraft) { d.Educations = nil }, "educations"},
		{"cgpa above scale", func(d *domain.ProfileDraft) { d.Educations[0].CGPA = ptr(11.0) }, "educations[0].cgpa"},
		{"education degree missing", func(d *domain.ProfileDraft) { d.Educations[0].Degree = "  " }, "educations[0].degree"},
		{"certification issuer missing", func(d *domain.ProfileDraft) {
			d.Certifications = []domain.CertificationDraft{{Name: "CKA", IssueDate: "2022-01-01"}}
		}, "certifications[0].issuing_company"},
		{"certification expires before issue", func(d *domain.ProfileDraft) {
			d.Certifications = []domain.CertificationDraft{{Name: "CKA", IssuingCompany: "CNCF", IssueDate: "2022-01-01", ExpirationDate: "2021-01-01"}}
		}, "certifications[0].expiration_date"},
		{"end date required when not current", func(d *domain.ProfileDraft) {
			d.WorkExperiences = []domain.WorkExperienceDraft{{CompanyName: "Acme", Position: "Dev", StartDate: "2019-01-01"}}
		}, "work_experiences[0].end_date"},
		{"end before start", func(d *domain.ProfileDraft) {
			d.WorkExperiences = []domain.WorkExperienceDraft{{CompanyName: "Acme", Position: "Dev", StartDate: "2019-01-01", EndDate: "2018-01-01"}}
		}, "work_experiences[0].end_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := baseDraft(domain.CandidateTypeRegular)
			tt.mutate(d)
			_, err := newIntake().NormalizeProfileDraft(d)
			require.Error(t, err)
			assert.Contains(t, fieldsOf(t, err), tt.field)
		})
	}
}

func TestNormalizeProfileDraft_CurrentPositionDropsEndDate(t *testing.T) {
	d := baseDraft(domain.CandidateTypeWomenReturning)
	d.WorkExperiences = []domain.WorkExperienceDraft{{
		ID:               ptr(int64(7)),
		CompanyName:      "Acme",
		Position:         "Lead",
		StartDate:        "2024-02-01",
		EndDate:          "2025-01-01",
		CurrentlyWorking: true,
	}}

	payload, err := newIntake().NormalizeProfileDraft(d)
	require.NoError(t, err)
	require.Len(t, payload.WorkExperiences, 1)
	w := payload.WorkExperiences[0]
	assert.Equal(t, int64(7), w.ID)
	assert.True(t, w.IsOngoing())
	assert.Nil(t, w.EndDate)
	assert.Equal(t, intakeNow, w.EffectiveEnd(intakeNow))
}

func TestNormalizeProfileDraft_NilDraft(t *testing.T) {
	_, err := newIntake().NormalizeProfileDraft(nil)
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
}
