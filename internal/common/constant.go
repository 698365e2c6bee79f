package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on inbound and outbound requests.
const AccessTokenHeaderName = "access_token"

// ErrorDomain is attached to every error detail sent over the wire.
const ErrorDomain = "selleradmin"
