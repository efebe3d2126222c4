package domain

import "context"

// AdminStats contains dashboard statistics
type AdminStats struct {
	TotalUsers           int64            `json:"totalUsers"`
	UsersByRole          UsersByRole      `json:"usersByRole"`
	TotalCandidates      int64            `json:"totalCandidates"`
	CandidatesByType     map[string]int64 `json:"candidatesByType"`
	TotalCompanies       int64            `json:"totalCompanies"`
	TotalJobs            int64            `json:"totalJobs"`
	ActiveJobs           int64            `json:"activeJobs"`
	TotalApplications    int64            `json:"totalApplications"`
	ApplicationsByStatus map[string]int64 `json:"applicationsByStatus"`
	SystemHealth         SystemHealth     `json:"systemHealth"`
}

type UsersByRole struct {
	Admin     int64 `json:"admin"`
	Employer  int64 `json:"employer"`
	Candidate int64 `json:"candidate"`
}

type SystemHealth struct {
	Status      string `json:"status"`      // "healthy", "degraded", "down"
	LastChecked string `json:"lastChecked"` // ISO8601 timestamp
}

// AdminUser represents a user for admin management
type AdminUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	CompanyID  *int64 `json:"companyId,omitempty"`
	IsDisabled bool   `json:"isDisabled"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// AdminJob represents a job for admin moderation
type AdminJob struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	CompanyId   int64  `json:"companyId"`
	CompanyName string `json:"companyName"`
	Category    string `json:"category"`
	IsActive    bool   `json:"isActive"`
	Deadline    string `json:"deadline,omitempty"`
	Applicants  int64  `json:"applicants"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// PaginatedResult for list responses
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginatedResult fills in TotalPages from total and pageSize.
func NewPaginatedResult[T any](data []T, total int64, page, pageSize int) *PaginatedResult[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &PaginatedResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// AdminRepository defines admin-specific data access
type AdminRepository interface {
	GetStats(ctx context.Context) (*AdminStats, error)
	ListUsers(ctx context.Context, role string, page, pageSize int) ([]AdminUser, int64, error)
	ListJobsForAdmin(ctx context.Context, active *bool, page, pageSize int) ([]AdminJob, int64, error)
}

// AdminUsecase defines admin business logic
type AdminUsecase interface {
	GetStats(ctx context.Context, actor Identity) (*AdminStats, error)

	// Users
	ListUsers(ctx context.Context, actor Identity, role string, page, pageSize int) (*PaginatedResult[AdminUser], error)
	DisableUser(ctx context.Context, actor Identity, userID string, disable bool) (*User, error)

	// Candidates, jobs and applications
	ListCandidates(ctx context.Context, actor Identity, filter CandidateFilter, page, pageSize int) (*PaginatedResult[CandidateProfile], error)
	ListJobs(ctx context.Context, actor Identity, active *bool, page, pageSize int) (*PaginatedResult[AdminJob], error)
	ListApplications(ctx context.Context, actor Identity, status string, page, pageSize int) (*PaginatedResult[Application], error)
}
