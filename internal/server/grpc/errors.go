package grpc

import (
	"github.com/dmitrijs2005/selleradmin/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var kindToCode = map[common.Kind]codes.Code{
	common.KindInvalidRole:      codes.InvalidArgument,
	common.KindNotAuthorized:    codes.PermissionDenied,
	common.KindInvalidPassword:  codes.Unauthenticated,
	common.KindInvalidReference: codes.FailedPrecondition,
	common.KindMalformedRequest: codes.InvalidArgument,
	common.KindNotFound:         codes.NotFound,
	common.KindAlreadyExists:    codes.AlreadyExists,
	common.KindUnauthenticated:  codes.Unauthenticated,
	common.KindStoreError:       codes.Unavailable,
	common.KindInternalError:    codes.Internal,
}

// toStatus converts a service error into a gRPC status carrying an
// ErrorInfo whose reason is the kind code. Internal and store failures
// are not described to the client beyond their kind.
func toStatus(err error) error {
	kind := common.KindOf(err)
	if kind == common.KindNone {
		return nil
	}

	code, ok := kindToCode[kind]
	if !ok {
		code = codes.Internal
	}

	msg := err.Error()
	if kind == common.KindInternalError || kind == common.KindStoreError {
		msg = kind.Sentinel().Error()
	}

	st := status.New(code, msg)
	withInfo, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: kind.String(),
		Domain: common.ErrorDomain,
	})
	if derr != nil {
		return st.Err()
	}
	return withInfo.Err()
}
