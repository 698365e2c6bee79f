package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "selleradmin.SellerAdmin"

const (
	MethodSignUp                = "SignUp"
	MethodSignIn                = "SignIn"
	MethodRotatePassword        = "RotatePassword"
	MethodGetProfile            = "GetProfile"
	MethodUpdateProfile         = "UpdateProfile"
	MethodProfileHistory        = "ProfileHistory"
	MethodProfileImageUploadURL = "ProfileImageUploadURL"
	MethodProfileImageURL       = "ProfileImageURL"
	MethodListSellers           = "ListSellers"
	MethodSearchSellers         = "SearchSellers"
	MethodChangeSellerStatus    = "ChangeSellerStatus"
	MethodGetSellerStatus       = "GetSellerStatus"
)

// FullMethod returns the wire name of a method, e.g. "/selleradmin.SellerAdmin/SignIn".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// IsPublic reports whether fullMethod may be called without an access token.
func IsPublic(fullMethod string) bool {
	return fullMethod == FullMethod(MethodSignUp) || fullMethod == FullMethod(MethodSignIn)
}

// SellerAdminServer is the server API of the SellerAdmin service.
type SellerAdminServer interface {
	SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error)
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	RotatePassword(context.Context, *RotatePasswordRequest) (*Empty, error)
	GetProfile(context.Context, *AccountRequest) (*ProfileResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*UpdateProfileResponse, error)
	ProfileHistory(context.Context, *AccountRequest) (*ProfileHistoryResponse, error)
	ProfileImageUploadURL(context.Context, *AccountRequest) (*ImageUploadURLResponse, error)
	ProfileImageURL(context.Context, *AccountRequest) (*ImageURLResponse, error)
	ListSellers(context.Context, *ListSellersRequest) (*ListSellersResponse, error)
	SearchSellers(context.Context, *SearchSellersRequest) (*SearchSellersResponse, error)
	ChangeSellerStatus(context.Context, *ChangeSellerStatusRequest) (*Empty, error)
	GetSellerStatus(context.Context, *AccountRequest) (*SellerStatusResponse, error)
}

func RegisterSellerAdminServer(s grpc.ServiceRegistrar, srv SellerAdminServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary builds the method descriptor the way protoc-gen-go-grpc would
// generate it for one unary method.
func unary[Req, Resp any](name string, call func(SellerAdminServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(SellerAdminServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SellerAdminServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodSignUp, SellerAdminServer.SignUp),
		unary(MethodSignIn, SellerAdminServer.SignIn),
		unary(MethodRotatePassword, SellerAdminServer.RotatePassword),
		unary(MethodGetProfile, SellerAdminServer.GetProfile),
		unary(MethodUpdateProfile, SellerAdminServer.UpdateProfile),
		unary(MethodProfileHistory, SellerAdminServer.ProfileHistory),
		unary(MethodProfileImageUploadURL, SellerAdminServer.ProfileImageUploadURL),
		unary(MethodProfileImageURL, SellerAdminServer.ProfileImageURL),
		unary(MethodListSellers, SellerAdminServer.ListSellers),
		unary(MethodSearchSellers, SellerAdminServer.SearchSellers),
		unary(MethodChangeSellerStatus, SellerAdminServer.ChangeSellerStatus),
		unary(MethodGetSellerStatus, SellerAdminServer.GetSellerStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "selleradmin",
}
