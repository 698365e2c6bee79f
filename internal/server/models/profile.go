package models

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Seller kinds accepted in ProfileFields.SellerType.
const (
	SellerTypeIndividual = "individual"
	SellerTypeCorporate  = "corporate"
)

var (
	clockTime = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	phone     = regexp.MustCompile(`^[0-9+\-() ]{6,20}$`)
	zipCode   = regexp.MustCompile(`^[0-9A-Za-z\- ]{3,10}$`)
)

// ProfileFields is one full snapshot of a seller's editable profile.
// Every write replaces the whole snapshot.
type ProfileFields struct {
	SellerType      string `json:"seller_type,omitempty"`
	NameKo          string `json:"name_ko"`
	NameEn          string `json:"name_en"`
	AppUserID       string `json:"app_user_id,omitempty"`
	Introduction    string `json:"introduction,omitempty"`
	Description     string `json:"description,omitempty"`
	ContactName     string `json:"contact_name,omitempty"`
	ContactPhone    string `json:"contact_phone,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty"`
	CSPhone         string `json:"cs_phone,omitempty"`
	ZipCode         string `json:"zip_code,omitempty"`
	Address         string `json:"address,omitempty"`
	AddressDetail   string `json:"address_detail,omitempty"`
	OpeningTime     string `json:"opening_time,omitempty"`
	ClosingTime     string `json:"closing_time,omitempty"`
	WeekendOpen     bool   `json:"weekend_open"`
	ProfileImageKey string `json:"profile_image_key,omitempty"`
}

// Validate checks the snapshot before it is appended as a new revision.
func (f ProfileFields) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.SellerType, validation.In(SellerTypeIndividual, SellerTypeCorporate)),
		validation.Field(&f.NameKo, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&f.NameEn, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&f.AppUserID, validation.Length(0, 64)),
		validation.Field(&f.Introduction, validation.RuneLength(0, 200)),
		validation.Field(&f.Description, validation.RuneLength(0, 2000)),
		validation.Field(&f.ContactName, validation.RuneLength(0, 50)),
		validation.Field(&f.ContactPhone, validation.Match(phone)),
		validation.Field(&f.ContactEmail, is.EmailFormat),
		validation.Field(&f.CSPhone, validation.Match(phone)),
		validation.Field(&f.ZipCode, validation.Match(zipCode)),
		validation.Field(&f.Address, validation.RuneLength(0, 200)),
		validation.Field(&f.AddressDetail, validation.RuneLength(0, 200)),
		validation.Field(&f.OpeningTime, validation.Match(clockTime)),
		validation.Field(&f.ClosingTime, validation.Match(clockTime)),
		validation.Field(&f.ProfileImageKey, validation.Length(0, 255)),
	)
}

// SellerProfile is one immutable revision of a seller's profile.
type SellerProfile struct {
	AccountNo int64 `json:"account_no"`
	Version   int64 `json:"version"`
	ProfileFields
	EditedBy  int64     `json:"edited_by"`
	CreatedAt time.Time `json:"created_at"`
}
