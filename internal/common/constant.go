package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header value.
const BearerPrefix = "Bearer "

// MaxLibrariesPerUser caps how many libraries one account may own.
const MaxLibrariesPerUser = 10

// MaxUploadSize is the largest accepted image upload, in bytes.
const MaxUploadSize = 5 << 20
