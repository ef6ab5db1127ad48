package presentation

const (
	AuthKey      = "Authorization"
	BearerScheme = "Bearer "
	UserKey      = "user"
	IDParam      = "id"
	ReasonTag    = "X-Reason"
)
