package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanViewCandidate(t *testing.T) {
	owner := "user-owner"
	tests := []struct {
		name string
		id   Identity
		want bool
	}{
		{"owner candidate", Identity{UserID: owner, Role: RoleCandidate}, true},
		{"other candidate", Identity{UserID: "user-other", Role: RoleCandidate}, false},
		{"employer", Identity{UserID: "emp", Role: RoleEmployer}, true},
		{"admin", Identity{UserID: "adm", Role: RoleAdmin}, true},
		{"unknown role", Identity{UserID: owner, Role: "GUEST"}, false},
		{"anonymous", Identity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewCandidate(tt.id, owner))
		})
	}
}

func TestCanManageCompany(t *testing.T) {
	cid := int64(7)
	other := int64(8)

	assert.True(t, CanManageCompany(Identity{UserID: "a", Role: RoleAdmin}, 7))
	assert.True(t, CanManageCompany(Identity{UserID: "e", Role: RoleEmployer, CompanyID: &cid}, 7))
	assert.False(t, CanManageCompany(Identity{UserID: "e", Role: RoleEmployer, CompanyID: &other}, 7))
	assert.False(t, CanManageCompany(Identity{UserID: "e", Role: RoleEmployer}, 7))
	assert.False(t, CanManageCompany(Identity{UserID: "c", Role: RoleCandidate, CompanyID: &cid}, 7))
}

func TestSignedURL_Valid(t *testing.T) {
	issued := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	u := SignedURL{URL: "https://s3.example/resumes/c/x.pdf", ExpiresAt: issued.Add(ResumeURLTTL)}

	assert.True(t, u.Valid(issued))
	assert.True(t, u.Valid(issued.Add(59*time.Minute)))
	assert.False(t, u.Valid(issued.Add(time.Hour)))
	assert.False(t, u.Valid(issued.Add(2*time.Hour)))
}

func TestJob_AcceptsApplications(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	assert.True(t, (&Job{IsActive: true}).AcceptsApplications(now))
	assert.True(t, (&Job{IsActive: true, Deadline: &future}).AcceptsApplications(now))
	assert.False(t, (&Job{IsActive: true, Deadline: &past}).AcceptsApplications(now))
	assert.False(t, (&Job{IsActive: false, Deadline: &future}).AcceptsApplications(now))
}
