package constants

const (
	//分頁
	DefaultPagingSize int = 20
	DefaultPaging     int = 1
	MaxPagingSize     int = 100
)

// for api context
type ContextKey string

const (
	RequesterKey ContextKey = "requester"
)

// gateway驗證完帶進來的身份headers
const (
	HeaderUserID  = "X-User-ID"
	HeaderUserAge = "X-User-Age"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)
