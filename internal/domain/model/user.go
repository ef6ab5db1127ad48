package model

// User is an identity issued by the external provider. Rows exist for every
// identity that has ever authenticated; unknown ids mean unknown identity.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
