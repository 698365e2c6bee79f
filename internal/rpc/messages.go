package rpc

import "github.com/dmitrijs2005/selleradmin/internal/server/models"

type Empty struct{}

type SignUpRequest struct {
	LoginID  string               `json:"login_id"`
	Password string               `json:"password"`
	Profile  models.ProfileFields `json:"profile"`
}

type SignUpResponse struct {
	Account models.Account `json:"account"`
}

type SignInRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

type SignInResponse struct {
	AccessToken string      `json:"access_token"`
	AccountNo   int64       `json:"account_no"`
	Role        models.Role `json:"role"`
}

// AccountRequest addresses one account; it is the request of every
// per-account read.
type AccountRequest struct {
	AccountNo int64 `json:"account_no"`
}

type RotatePasswordRequest struct {
	AccountNo   int64  `json:"account_no"`
	OldPassword string `json:"old_password,omitempty"`
	NewPassword string `json:"new_password"`
}

type ProfileResponse struct {
	Profile models.SellerProfile `json:"profile"`
}

type UpdateProfileRequest struct {
	AccountNo int64                `json:"account_no"`
	Profile   models.ProfileFields `json:"profile"`
}

type UpdateProfileResponse struct {
	Version int64 `json:"version"`
}

type ProfileHistoryResponse struct {
	Revisions []models.SellerProfile `json:"revisions"`
}

type ImageUploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ImageURLResponse struct {
	URL string `json:"url"`
}

type ListSellersRequest struct {
	Filter models.ListFilter `json:"filter"`
}

type ListSellersResponse struct {
	Page models.SellerPage `json:"page"`
}

type SearchSellersRequest struct {
	Keyword string `json:"keyword"`
}

type SearchSellersResponse struct {
	Items []models.SellerSummary `json:"items"`
}

type ChangeSellerStatusRequest struct {
	AccountNo int64  `json:"account_no"`
	Status    string `json:"status"`
}

type SellerStatusResponse struct {
	AccountNo int64               `json:"account_no"`
	Status    models.SellerStatus `json:"status"`
}
