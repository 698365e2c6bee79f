package rpc

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Client is a typed SellerAdmin client. After SignIn every call carries the
// received access token; SetAccessToken installs one obtained elsewhere.
type Client struct {
	conn *grpc.ClientConn

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (c *Client) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := c.AccessToken(); token != "" && !IsPublic(method) {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// Dial connects to endpoint over plaintext. Extra options are appended after
// the defaults, so tests can swap the dialer.
func Dial(endpoint string, opts ...grpc.DialOption) (*Client, error) {
	c := &Client{}
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}
	conn, err := grpc.NewClient(endpoint, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	if err := c.conn.Invoke(ctx, FullMethod(method), req, resp); err != nil {
		return FromStatus(err)
	}
	return nil
}

func (c *Client) SignUp(ctx context.Context, req *SignUpRequest) (models.Account, error) {
	var resp SignUpResponse
	if err := c.invoke(ctx, MethodSignUp, req, &resp); err != nil {
		return models.Account{}, err
	}
	return resp.Account, nil
}

func (c *Client) SignIn(ctx context.Context, loginID, password string) (*SignInResponse, error) {
	var resp SignInResponse
	if err := c.invoke(ctx, MethodSignIn, &SignInRequest{LoginID: loginID, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.SetAccessToken(resp.AccessToken)
	return &resp, nil
}

func (c *Client) RotatePassword(ctx context.Context, req *RotatePasswordRequest) error {
	return c.invoke(ctx, MethodRotatePassword, req, &Empty{})
}

func (c *Client) GetProfile(ctx context.Context, accountNo int64) (models.SellerProfile, error) {
	var resp ProfileResponse
	if err := c.invoke(ctx, MethodGetProfile, &AccountRequest{AccountNo: accountNo}, &resp); err != nil {
		return models.SellerProfile{}, err
	}
	return resp.Profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, accountNo int64, fields models.ProfileFields) (int64, error) {
	var resp UpdateProfileResponse
	if err := c.invoke(ctx, MethodUpdateProfile, &UpdateProfileRequest{AccountNo: accountNo, Profile: fields}, &resp); err != nil {
		return 0, err
	}
	return resp.Version, nil
}

func (c *Client) ProfileHistory(ctx context.Context, accountNo int64) ([]models.SellerProfile, error) {
	var resp ProfileHistoryResponse
	if err := c.invoke(ctx, MethodProfileHistory, &AccountRequest{AccountNo: accountNo}, &resp); err != nil {
		return nil, err
	}
	return resp.Revisions, nil
}

func (c *Client) ProfileImageUploadURL(ctx context.Context, accountNo int64) (*ImageUploadURLResponse, error) {
	var resp ImageUploadURLResponse
	if err := c.invoke(ctx, MethodProfileImageUploadURL, &AccountRequest{AccountNo: accountNo}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ProfileImageURL(ctx context.Context, accountNo int64) (string, error) {
	var resp ImageURLResponse
	if err := c.invoke(ctx, MethodProfileImageURL, &AccountRequest{AccountNo: accountNo}, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *Client) ListSellers(ctx context.Context, filter models.ListFilter) (models.SellerPage, error) {
	var resp ListSellersResponse
	if err := c.invoke(ctx, MethodListSellers, &ListSellersRequest{Filter: filter}, &resp); err != nil {
		return models.SellerPage{}, err
	}
	return resp.Page, nil
}

func (c *Client) SearchSellers(ctx context.Context, keyword string) ([]models.SellerSummary, error) {
	var resp SearchSellersResponse
	if err := c.invoke(ctx, MethodSearchSellers, &SearchSellersRequest{Keyword: keyword}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) ChangeSellerStatus(ctx context.Context, accountNo int64, st string) error {
	return c.invoke(ctx, MethodChangeSellerStatus, &ChangeSellerStatusRequest{AccountNo: accountNo, Status: st}, &Empty{})
}

func (c *Client) GetSellerStatus(ctx context.Context, accountNo int64) (models.SellerStatus, error) {
	var resp SellerStatusResponse
	if err := c.invoke(ctx, MethodGetSellerStatus, &AccountRequest{AccountNo: accountNo}, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// FromStatus turns a gRPC status back into an error that matches the
// sentinel of its kind with errors.Is. The server message is kept.
func FromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != common.ErrorDomain {
			continue
		}
		sentinel := common.ParseKind(info.GetReason()).Sentinel()
		if sentinel == nil {
			return nil
		}
		return fmt.Errorf("%w: %s", sentinel, st.Message())
	}
	return err
}
