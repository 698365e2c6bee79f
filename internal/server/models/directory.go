package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultPageSize   = 10
	MaxPageSize       = 100
	SearchResultLimit = 10
)

// ListFilter narrows a directory listing. Zero values do not filter.
type ListFilter struct {
	AccountNo   int64        `json:"account_no,omitempty"`
	LoginID     string       `json:"login_id,omitempty"`
	NameKo      string       `json:"name_ko,omitempty"`
	NameEn      string       `json:"name_en,omitempty"`
	Status      SellerStatus `json:"status,omitempty"`
	CreatedFrom time.Time    `json:"created_from,omitempty"`
	CreatedTo   time.Time    `json:"created_to,omitempty"`
	Offset      int          `json:"offset,omitempty"`
	Limit       int          `json:"limit,omitempty"`
}

// Normalize fills in the default page size.
func (f ListFilter) Normalize() ListFilter {
	if f.Limit == 0 {
		f.Limit = DefaultPageSize
	}
	return f
}

func (f ListFilter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.AccountNo, validation.Min(int64(0))),
		validation.Field(&f.Status, validation.By(func(v any) error {
			if s, _ := v.(SellerStatus); s != "" && !s.IsValid() {
				return validation.NewError("validation_invalid_status", "unknown seller status")
			}
			return nil
		})),
		validation.Field(&f.Offset, validation.Min(0)),
		validation.Field(&f.Limit, validation.Min(1), validation.Max(MaxPageSize)),
		validation.Field(&f.CreatedTo, validation.By(func(any) error {
			if !f.CreatedFrom.IsZero() && !f.CreatedTo.IsZero() && f.CreatedTo.Before(f.CreatedFrom) {
				return validation.NewError("validation_range", "must not be before created_from")
			}
			return nil
		})),
	)
}

// SellerSummary is a directory row: the account and its current profile.
type SellerSummary struct {
	AccountNo int64        `json:"account_no"`
	LoginID   string       `json:"login_id"`
	Status    SellerStatus `json:"status"`
	NameKo    string       `json:"name_ko"`
	NameEn    string       `json:"name_en"`
	Version   int64        `json:"profile_version"`
	CreatedAt time.Time    `json:"created_at"`
}

type SellerPage struct {
	Items []SellerSummary `json:"items"`
	Total int64           `json:"total"`
}
