package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/selleradmin/internal/common"
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

const profileColumns = `account_no, version, seller_type, name_ko, name_en, COALESCE(app_user_id, ''),
		 introduction, description, contact_name, contact_phone, contact_email, cs_phone,
		 zip_code, address, address_detail, opening_time, closing_time, weekend_open,
		 profile_image_key, edited_by, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(s scanner) (*models.SellerProfile, error) {
	p := &models.SellerProfile{}
	f := &p.ProfileFields
	err := s.Scan(&p.AccountNo, &p.Version, &f.SellerType, &f.NameKo, &f.NameEn, &f.AppUserID,
		&f.Introduction, &f.Description, &f.ContactName, &f.ContactPhone, &f.ContactEmail, &f.CSPhone,
		&f.ZipCode, &f.Address, &f.AddressDetail, &f.OpeningTime, &f.ClosingTime, &f.WeekendOpen,
		&f.ProfileImageKey, &p.EditedBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLRepository) GetCurrent(ctx context.Context, accountNo int64) (*models.SellerProfile, error) {
	query :=
		`SELECT ` + profileColumns + `
		 FROM seller_profiles
		 WHERE account_no = ?
		 ORDER BY version DESC
		 LIMIT 1`

	p, err := scanProfile(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), accountNo))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

// Postgres: bumping accounts.profile_version takes the account row lock, so
// concurrent appends for one account queue behind each other.
const appendPostgres = `WITH next AS (
		 UPDATE accounts SET profile_version = profile_version + 1
		 WHERE account_no = ?
		 RETURNING account_no, profile_version
		 )
		 INSERT INTO seller_profiles (account_no, version, seller_type, name_ko, name_en, app_user_id,
		 introduction, description, contact_name, contact_phone, contact_email, cs_phone,
		 zip_code, address, address_detail, opening_time, closing_time, weekend_open,
		 profile_image_key, edited_by, created_at)
		 SELECT next.account_no, next.profile_version, ?, ?, ?, NULLIF(?, ''),
		 ?, ?, ?, ?, ?, ?,
		 ?, ?, ?, ?, ?, ?::boolean,
		 ?, ?::bigint, ?::timestamptz
		 FROM next
		 RETURNING version`

// SQLite: a single writer serializes the statement; a trigger keeps
// accounts.profile_version in step.
const appendSQLite = `INSERT INTO seller_profiles (account_no, version, seller_type, name_ko, name_en, app_user_id,
		 introduction, description, contact_name, contact_phone, contact_email, cs_phone,
		 zip_code, address, address_detail, opening_time, closing_time, weekend_open,
		 profile_image_key, edited_by, created_at)
		 SELECT a.account_no,
		 COALESCE((SELECT MAX(p.version) FROM seller_profiles p WHERE p.account_no = a.account_no), 0) + 1,
		 ?, ?, ?, NULLIF(?, ''),
		 ?, ?, ?, ?, ?, ?,
		 ?, ?, ?, ?, ?, ?,
		 ?, ?, ?
		 FROM accounts a
		 WHERE a.account_no = ?
		 RETURNING version`

func (r *SQLRepository) AppendVersion(ctx context.Context, accountNo int64, fields models.ProfileFields, editedBy int64) (int64, error) {
	values := []any{
		fields.SellerType, fields.NameKo, fields.NameEn, fields.AppUserID,
		fields.Introduction, fields.Description, fields.ContactName, fields.ContactPhone, fields.ContactEmail, fields.CSPhone,
		fields.ZipCode, fields.Address, fields.AddressDetail, fields.OpeningTime, fields.ClosingTime, fields.WeekendOpen,
		fields.ProfileImageKey, editedBy, time.Now().UTC(),
	}

	var (
		query string
		args  []any
	)
	switch r.dialect {
	case dbx.SQLite:
		query = appendSQLite
		args = append(values, accountNo)
	default:
		query = appendPostgres
		args = append([]any{accountNo}, values...)
	}

	var version int64
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), args...).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return version, nil
}

func (r *SQLRepository) History(ctx context.Context, accountNo int64) ([]models.SellerProfile, error) {
	query :=
		`SELECT ` + profileColumns + `
		 FROM seller_profiles
		 WHERE account_no = ?
		 ORDER BY version ASC`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), accountNo)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.SellerProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *SQLRepository) AppUserExists(ctx context.Context, appUserID string) (bool, error) {
	query := `SELECT COUNT(*) FROM app_users WHERE app_user_id = ?`

	var n int64
	if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), appUserID).Scan(&n); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}
