package usecase

import (
	"context"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"modarc/internal/domain/model"
	"modarc/internal/domain/repository/database"
)

// TokenClaims is the payload of identity-provider tokens. Subject carries
// the user id in decimal form.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// Authorizer verifies identity tokens offline (HS256, shared secret with the
// identity provider) and resolves them against the users table; a valid
// signature over an unknown id is still rejected.
type Authorizer struct {
	secret []byte
	users  database.UserRetriever
}

func NewAuthorizer(secret string, users database.UserRetriever) *Authorizer {
	return &Authorizer{
		secret: []byte(secret),
		users:  users,
	}
}

func (a *Authorizer) Resolve(ctx context.Context, token string) (*model.User, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized.New("invalid identity token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrUnauthorized.New("malformed token subject %q", claims.Subject)
	}

	user, err := a.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrUnauthorized.New("unknown identity %d", userID)
	}

	return user, nil
}
