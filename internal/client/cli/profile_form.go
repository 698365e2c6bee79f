package cli

import (
	"strings"

	"github.com/dmitrijs2005/selleradmin/internal/server/models"
)

func emptyFields() models.ProfileFields {
	return models.ProfileFields{SellerType: models.SellerTypeIndividual}
}

// promptProfile walks the user through every profile field, starting from
// the values already in f.
func (a *App) promptProfile(f *models.ProfileFields) error {
	prompts := []struct {
		label string
		field *string
	}{
		{"Seller type (individual/corporate)", &f.SellerType},
		{"Name (Korean)", &f.NameKo},
		{"Name (English)", &f.NameEn},
		{"App user id", &f.AppUserID},
		{"Introduction", &f.Introduction},
		{"Description", &f.Description},
		{"Contact name", &f.ContactName},
		{"Contact phone", &f.ContactPhone},
		{"Contact email", &f.ContactEmail},
		{"CS phone", &f.CSPhone},
		{"Zip code", &f.ZipCode},
		{"Address", &f.Address},
		{"Address detail", &f.AddressDetail},
		{"Opening time (HH:MM)", &f.OpeningTime},
		{"Closing time (HH:MM)", &f.ClosingTime},
		{"Profile image key", &f.ProfileImageKey},
	}

	for _, p := range prompts {
		v, err := GetDefaultText(a.reader, p.label, *p.field, a.out)
		if err != nil {
			return err
		}
		*p.field = v
	}

	current := "no"
	if f.WeekendOpen {
		current = "yes"
	}
	v, err := GetDefaultText(a.reader, "Open on weekends (yes/no)", current, a.out)
	if err != nil {
		return err
	}
	f.WeekendOpen = strings.EqualFold(v, "yes") || strings.EqualFold(v, "y")
	return nil
}
