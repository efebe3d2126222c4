package domain

// Identity is the authenticated caller as resolved by the auth middleware.
type Identity struct {
	UserID    string
	Email     string
	Role      string
	CompanyID *int64
}

func (i Identity) IsAdmin() bool     { return i.Role == RoleAdmin }
func (i Identity) IsEmployer() bool  { return i.Role == RoleEmployer }
func (i Identity) IsCandidate() bool { return i.Role == RoleCandidate }

// CanViewCandidate is the single read policy for candidate PII.
// Employers and admins see every candidate, a candidate sees only their own record.
func CanViewCandidate(id Identity, ownerUserID string) bool {
	if id.UserID == "" {
		return false
	}
	switch id.Role {
	case RoleAdmin, RoleEmployer:
		return true
	case RoleCandidate:
		return ownerUserID != "" && id.UserID == ownerUserID
	default:
		return false
	}
}

// CanEditCandidate allows the owning candidate and admins.
func CanEditCandidate(id Identity, ownerUserID string) bool {
	if id.IsAdmin() {
		return true
	}
	return id.IsCandidate() && id.UserID != "" && id.UserID == ownerUserID
}

// CanManageCompany allows admins and employers attached to the company.
func CanManageCompany(id Identity, companyID int64) bool {
	if id.IsAdmin() {
		return true
	}
	return id.IsEmployer() && id.CompanyID != nil && *id.CompanyID == companyID
}
