package grpc

import (
	"context"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/rpc"
	"github.com/dmitrijs2005/selleradmin/internal/server/authz"
	"github.com/dmitrijs2005/selleradmin/internal/server/services"
)

// identity returns the caller resolved by accessTokenInterceptor.
func identity(ctx context.Context) (authz.Identity, error) {
	id, ok := authz.IdentityFrom(ctx)
	if !ok {
		return authz.Identity{}, toStatus(common.ErrorUnauthorized)
	}
	return id, nil
}

// on builds the gate context for a request addressed to target.
func on(ctx context.Context, target int64) (authz.Context, error) {
	id, err := identity(ctx)
	if err != nil {
		return authz.Context{}, err
	}
	return id.On(target), nil
}

func (s *GRPCServer) SignUp(ctx context.Context, req *rpc.SignUpRequest) (*rpc.SignUpResponse, error) {

	account, err := s.svc.Accounts.SignUp(ctx, services.SignUpRequest{
		LoginID:  req.LoginID,
		Password: req.Password,
		Profile:  req.Profile,
	})
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Seller registered", "account_no", account.AccountNo)
	return &rpc.SignUpResponse{Account: *account}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *rpc.SignInRequest) (*rpc.SignInResponse, error) {

	res, err := s.svc.Accounts.SignIn(ctx, req.LoginID, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.SignInResponse{
		AccessToken: res.AccessToken,
		AccountNo:   res.Account.AccountNo,
		Role:        res.Account.Role,
	}, nil
}

func (s *GRPCServer) RotatePassword(ctx context.Context, req *rpc.RotatePasswordRequest) (*rpc.Empty, error) {
	ac, err := on(ctx, req.AccountNo)
	if err != nil {
		return nil, err
	}

	err = s.svc.Passwords.Rotate(ctx, ac, services.RotateRequest{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *rpc.AccountRequest) (*rpc.ProfileResponse, error) {
	ac, err := on(ctx, req.AccountNo)
	if err != nil {
		return nil, err
	}

	p, err := s.svc.Profiles.Read(ctx, ac)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ProfileResponse{Profile: *p}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.UpdateProfileResponse, error) {
	ac, err := on(ctx, req.AccountNo)
	if err != nil {
		return nil, err
	}

	v, err := s.svc.Profiles.Write(ctx, ac, req.Profile)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.UpdateProfileResponse{Version: v}, nil
}

func (s *GRPCServer) ProfileHistory(ctx context.Context, req *rpc.AccountRequest) (*rpc.ProfileHistoryResponse, error) {
	ac, err := on(ctx, req.AccountNo)
	if err != nil {
		return nil, err
	}

	h, err := s.svc.Profiles.History(ctx, ac)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ProfileHistoryResponse{Revisions: h}, nil
}

func (s *GRPCServer) ProfileImageUploadURL(ctx context.Context, req *rpc.AccountRequest) (*rpc.ImageUploadURLResponse, error) {
	ac, err := on(ctx, req.AccountNo)
	if err != nil {
		return nil, err
	}

	key, url, err := s.svc.Profiles.ImageUploadURL(ctx, ac)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ImageUploadURLResponse{Key: key, URL: url}, nil
}

func (s *GRPCServer) ProfileImageURL(ctx context.Context, req *rpc.AccountRequest) (*rpc.ImageURLResponse, error) {
	ac, err := on(ctx, req.AccountNo)
	if err != nil {
		return nil, err
	}

	url, err := s.svc.Profiles.ImageURL(ctx, ac)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ImageURLResponse{URL: url}, nil
}

func (s *GRPCServer) ListSellers(ctx context.Context, req *rpc.ListSellersRequest) (*rpc.ListSellersResponse, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.svc.Directory.List(ctx, id, req.Filter)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ListSellersResponse{Page: *page}, nil
}

func (s *GRPCServer) SearchSellers(ctx context.Context, req *rpc.SearchSellersRequest) (*rpc.SearchSellersResponse, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.svc.Directory.SearchByName(ctx, id, req.Keyword)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SearchSellersResponse{Items: items}, nil
}

func (s *GRPCServer) ChangeSellerStatus(ctx context.Context, req *rpc.ChangeSellerStatusRequest) (*rpc.Empty, error) {
	id, err := identity(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.svc.Directory.ChangeStatus(ctx, id, req.AccountNo, req.Status); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) GetSellerStatus(ctx context.Context, req *rpc.AccountRequest) (*rpc.SellerStatusResponse, error) {
	ac, err := on(ctx, req.AccountNo)
	if err != nil {
		return nil, err
	}

	st, err := s.svc.Directory.Status(ctx, ac)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SellerStatusResponse{AccountNo: req.AccountNo, Status: st}, nil
}
