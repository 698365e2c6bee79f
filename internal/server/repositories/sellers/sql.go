package sellers

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/selleradmin/internal/dbx"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

const currentProfileJoin = `FROM accounts a
		 LEFT JOIN seller_profiles p ON p.account_no = a.account_no
		 AND p.version = (SELECT MAX(v.version) FROM seller_profiles v WHERE v.account_no = a.account_no)
		 WHERE a.role = 'seller'`

const summaryColumns = `a.account_no, a.login_id, a.status, COALESCE(p.name_ko, ''), COALESCE(p.name_en, ''),
		 COALESCE(p.version, 0), a.created_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, with s's own
// wildcards taken literally. Case folding is left to SQL LOWER so the
// pattern and the column are folded by the same function.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func prefixPattern(s string) string {
	return likeEscaper.Replace(s) + "%"
}

func whereClause(f models.ListFilter) (string, []any) {
	var (
		b    strings.Builder
		args []any
	)

	add := func(cond string, arg any) {
		b.WriteString("\n\t\t AND ")
		b.WriteString(cond)
		args = append(args, arg)
	}

	if f.AccountNo != 0 {
		add("a.account_no = ?", f.AccountNo)
	}
	if f.LoginID != "" {
		add("a.login_id = ?", f.LoginID)
	}
	if f.NameKo != "" {
		add(`LOWER(p.name_ko) LIKE LOWER(?) ESCAPE '\'`, containsPattern(f.NameKo))
	}
	if f.NameEn != "" {
		add(`LOWER(p.name_en) LIKE LOWER(?) ESCAPE '\'`, containsPattern(f.NameEn))
	}
	if f.Status != "" {
		add("a.status = ?", string(f.Status))
	}
	if !f.CreatedFrom.IsZero() {
		add("a.created_at >= ?", f.CreatedFrom.UTC())
	}
	if !f.CreatedTo.IsZero() {
		add("a.created_at < ?", f.CreatedTo.UTC())
	}

	return b.String(), args
}

func (r *SQLRepository) List(ctx context.Context, filter models.ListFilter) (*models.SellerPage, error) {
	filter = filter.Normalize()
	where, args := whereClause(filter)

	page := &models.SellerPage{Items: []models.SellerSummary{}}

	countQuery := `SELECT COUNT(*) ` + currentProfileJoin + where
	if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(countQuery), args...).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + summaryColumns + `
		 ` + currentProfileJoin + where + `
		 ORDER BY a.account_no DESC
		 LIMIT ? OFFSET ?`

	items, err := r.query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, err
	}
	page.Items = items

	return page, nil
}

func (r *SQLRepository) SearchByName(ctx context.Context, keyword string, limit int) ([]models.SellerSummary, error) {
	if limit <= 0 || limit > models.SearchResultLimit {
		limit = models.SearchResultLimit
	}

	query := `SELECT ` + summaryColumns + `
		 ` + currentProfileJoin + `
		 AND LOWER(p.name_ko) LIKE LOWER(?) ESCAPE '\'
		 ORDER BY CASE
		 WHEN LOWER(p.name_ko) = LOWER(?) THEN 0
		 WHEN LOWER(p.name_ko) LIKE LOWER(?) ESCAPE '\' THEN 1
		 ELSE 2
		 END, a.account_no ASC
		 LIMIT ?`

	return r.query(ctx, query, containsPattern(keyword), keyword, prefixPattern(keyword), limit)
}

func (r *SQLRepository) query(ctx context.Context, query string, args ...any) ([]models.SellerSummary, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.SellerSummary{}
	for rows.Next() {
		var (
			s      models.SellerSummary
			status string
		)
		if err := rows.Scan(&s.AccountNo, &s.LoginID, &status, &s.NameKo, &s.NameEn, &s.Version, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		s.Status = models.SellerStatus(status)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
