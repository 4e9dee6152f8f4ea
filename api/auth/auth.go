// Package auth wraps the account endpoints: registration, login and the
// current-user lookup.
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kbukum/tripclient/api"
	"github.com/kbukum/tripclient/apiclient"
	apierrors "github.com/kbukum/tripclient/errors"
	"github.com/kbukum/tripclient/schema"
	"github.com/kbukum/tripclient/session"
)

// Endpoint paths.
const (
	EndpointRegister = "/auth/register"
	EndpointLogin    = "/auth/login"
	EndpointMe       = "/auth/me"
)

// InvalidEmailMessage replaces the backend's email format errors.
const InvalidEmailMessage = "Please enter a valid email address."

// ExpiredTokenMessage is reported when login succeeds but the issued token
// has already expired.
const ExpiredTokenMessage = "The server issued an access token that has already expired."

// MessageRules returns the friendly-message rules for account errors. They
// are meant for apiclient.Config.MessageRules.
func MessageRules() []apiclient.MessageRule {
	return []apiclient.MessageRule{
		apiclient.ContainsRule("auth.invalid_email", "valid email", InvalidEmailMessage),
		apiclient.StatusContainsRule("auth.bad_credentials", http.StatusUnauthorized,
			"incorrect username or password", "Incorrect username or password."),
	}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token" validate:"required"`
	TokenType   string `json:"token_type,omitempty"`
}

// User is an account as returned by the backend.
type User struct {
	ID        int        `json:"id" validate:"required"`
	Username  string     `json:"username" validate:"required"`
	Email     string     `json:"email" validate:"required"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// TokenSink receives the access token after a successful login.
// *session.Store satisfies it.
type TokenSink interface {
	Set(token string) error
}

// Service calls the account endpoints.
type Service struct {
	client *apiclient.Client
	sink   TokenSink
}

// New creates a Service. sink may be nil.
func New(client *apiclient.Client, sink TokenSink) *Service {
	return &Service{client: client, sink: sink}
}

// Register creates an account and returns it.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	if err := api.CheckInput(req); err != nil {
		return User{}, err
	}
	return apiclient.Post(ctx, s.client, EndpointRegister, req, schema.Struct[User]())
}

// Login exchanges credentials for an access token and hands it to the sink.
func (s *Service) Login(ctx context.Context, req LoginRequest) (Token, error) {
	if err := api.CheckInput(req); err != nil {
		return Token{}, err
	}
	tok, err := apiclient.Post(ctx, s.client, EndpointLogin, req, schema.Struct[Token]())
	if err != nil {
		return Token{}, err
	}
	if s.sink != nil {
		if err := s.sink.Set(tok.AccessToken); err != nil {
			return Token{}, sinkError(err)
		}
	}
	return tok, nil
}

func sinkError(err error) error {
	if apiErr, ok := apierrors.As(err); ok {
		return apiErr
	}
	if errors.Is(err, session.ErrExpired) {
		e := apierrors.New(apierrors.ErrCodeValidation, ExpiredTokenMessage, 0)
		e.Cause = err
		return e
	}
	return apierrors.Unknown(err)
}

// Me returns the signed-in user.
func (s *Service) Me(ctx context.Context) (User, error) {
	return apiclient.Get(ctx, s.client, EndpointMe, schema.Struct[User]())
}
