package postgres

import (
	"context"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contentRepo struct {
	db *pgxpool.Pool
}

func NewContentRepository(db *pgxpool.Pool) domain.ContentRepository {
	return &contentRepo{db: db}
}

const contentColumns = `id, page, kind, title, body, image_url, link_url, position, published, created_at, updated_at`

func scanSection(row pgx.Row) (*domain.ContentSection, error) {
	var s domain.ContentSection
	err := row.Scan(&s.ID, &s.Page, &s.Kind, &s.Title, &s.Body, &s.ImageURL, &s.LinkURL, &s.Position, &s.Published, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *contentRepo) ListByPage(ctx context.Context, page domain.ContentPage, publishedOnly bool) ([]domain.ContentSection, error) {
	query := `SELECT ` + contentColumns + ` FROM content_sections
	          WHERE page = $1 AND (NOT $2 OR published)
	          ORDER BY position, id`
	rows, err := r.db.Query(ctx, query, page, publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []domain.ContentSection{}
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, *s)
	}
	return sections, rows.Err()
}

func (r *contentRepo) GetByID(ctx context.Context, id int64) (*domain.ContentSection, error) {
	s, err := scanSection(r.db.QueryRow(ctx, `SELECT `+contentColumns+` FROM content_sections WHERE id = $1`, id))
	if err != nil {
		return nil, mapNoRows(err)
	}
	return s, nil
}

func (r *contentRepo) Create(ctx context.Context, s *domain.ContentSection) error {
	query := `INSERT INTO content_sections (page, kind, title, body, image_url, link_url, position, published)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query, s.Page, s.Kind, s.Title, s.Body, s.ImageURL, s.LinkURL, s.Position, s.Published).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *contentRepo) Update(ctx context.Context, s *domain.ContentSection) error {
	query := `UPDATE content_sections
	          SET page = $2, kind = $3, title = $4, body = $5, image_url = $6, link_url = $7,
	              position = $8, published = $9, updated_at = NOW()
	          WHERE id = $1
	          RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query, s.ID, s.Page, s.Kind, s.Title, s.Body, s.ImageURL, s.LinkURL, s.Position, s.Published).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	return mapNoRows(err)
}

func (r *contentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM content_sections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
