package gateway

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/RedDotz20/storeapi/internal/domain"
	apperrors "github.com/RedDotz20/storeapi/pkg/errors"
	"github.com/RedDotz20/storeapi/pkg/httpclient"
)

// Auth exchanges credentials for a token and the user's profile.
type Auth interface {
	Login(ctx context.Context, creds domain.LoginCredentials) (string, domain.User, error)
}

// FakeStoreAuth authenticates against the Fake Store API, which issues
// a token for a username/password pair but has no profile endpoint
// tied to the token. The profile is read from a fixed demo user.
type FakeStoreAuth struct {
	client *httpclient.JSONClient
	userID int
}

// DefaultFakeStoreUserID is the demo profile returned after login.
const DefaultFakeStoreUserID = 1

// NewFakeStoreAuth builds an auth gateway over the given client.
// userID selects the demo profile; zero means DefaultFakeStoreUserID.
func NewFakeStoreAuth(client *httpclient.JSONClient, userID int) *FakeStoreAuth {
	if userID <= 0 {
		userID = DefaultFakeStoreUserID
	}
	return &FakeStoreAuth{client: client, userID: userID}
}

type fakeStoreUser struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Login exchanges the credentials for a token, then loads the demo
// profile. A rejected login surfaces as an unauthorized error.
func (a *FakeStoreAuth) Login(ctx context.Context, creds domain.LoginCredentials) (string, domain.User, error) {
	body := map[string]string{
		"username": creds.Identifier,
		"password": creds.Password,
	}
	var tokenResp struct {
		Token string `json:"token"`
	}
	if err := a.client.Post(ctx, "/auth/login", body, &tokenResp); err != nil {
		return "", domain.User{}, loginError(err)
	}

	var payload fakeStoreUser
	if err := a.client.Get(ctx, "/users/"+strconv.Itoa(a.userID), nil, &payload); err != nil {
		return "", domain.User{}, err
	}

	user := domain.User{
		ID:       payload.ID,
		Username: payload.Username,
		Email:    payload.Email,
		Role:     "user",
	}
	return tokenResp.Token, user, nil
}

// PlatziAuth authenticates against the Platzi store API, which issues
// a JWT access token and serves the profile behind it.
type PlatziAuth struct {
	client *httpclient.JSONClient
	log    *slog.Logger
}

// NewPlatziAuth builds an auth gateway over the given client.
func NewPlatziAuth(client *httpclient.JSONClient, log *slog.Logger) *PlatziAuth {
	return &PlatziAuth{client: client, log: log}
}

type platziProfile struct {
	ID         int    `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	CreationAt string `json:"creationAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// Login exchanges the credentials for an access token and fetches the
// profile it belongs to. Tokens that are already expired are rejected
// without a profile round trip.
func (a *PlatziAuth) Login(ctx context.Context, creds domain.LoginCredentials) (string, domain.User, error) {
	body := map[string]string{
		"email":    creds.Identifier,
		"password": creds.Password,
	}
	var tokenResp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := a.client.Post(ctx, "/auth/login", body, &tokenResp); err != nil {
		return "", domain.User{}, loginError(err)
	}

	if expired, err := tokenExpired(tokenResp.AccessToken); err != nil {
		a.log.Warn("unparseable access token", "error", err)
	} else if expired {
		return "", domain.User{}, apperrors.Unauthorized("access token already expired")
	}

	var payload platziProfile
	profileClient := a.client.WithHeader("Authorization", "Bearer "+tokenResp.AccessToken)
	if err := profileClient.Get(ctx, "/auth/profile", nil, &payload); err != nil {
		return "", domain.User{}, err
	}

	user := domain.User{
		ID:        payload.ID,
		Username:  payload.Name,
		Email:     payload.Email,
		Role:      payload.Role,
		CreatedAt: parseAPITime(payload.CreationAt),
		UpdatedAt: parseAPITime(payload.UpdatedAt),
	}
	return tokenResp.AccessToken, user, nil
}

// tokenExpired inspects the token's exp claim without verifying the
// signature. Verification belongs to the issuing API, not this client.
func tokenExpired(token string) (bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, err
	}
	return exp.Before(time.Now()), nil
}

func parseAPITime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// loginError folds upstream rejections into a uniform credentials
// error so callers never leak backend specifics to the client.
func loginError(err error) error {
	if errors.Is(err, apperrors.ErrUnauthorized) || errors.Is(err, apperrors.ErrInvalidInput) {
		return apperrors.Unauthorized("invalid credentials")
	}
	return err
}
