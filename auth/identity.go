package auth

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Portuguese failure messages surfaced to operators. Login failures are
// classified by the provider's error code; everything else collapses to the
// generic message.
const (
	MsgLoginFailed      = "Erro ao fazer login."
	MsgInvalidEmail     = "E-mail inválido."
	MsgWrongCredentials = "E-mail ou senha errados."
	MsgWrongPassword    = "Senha incorreta."
	MsgResetFailed      = "Erro ao enviar e-mail."
)

// IdentityClient signs operators in against the Firebase Identity Toolkit
// REST API. Credentials never touch this service's own store; the provider
// is the sole authority.
type IdentityClient struct {
	http   *resty.Client
	apiKey string
	logger *zap.Logger
}

// NewIdentityClient builds a client for the given Web API key.
func NewIdentityClient(apiKey string, logger *zap.Logger) *IdentityClient {
	client := resty.New().
		SetBaseURL("https://identitytoolkit.googleapis.com/v1").
		SetTimeout(15 * time.Second)

	return &IdentityClient{
		http:   client,
		apiKey: apiKey,
		logger: logger,
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	Email   string `json:"email"`
	LocalID string `json:"localId"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn verifies the e-mail/password pair. On success it returns the
// canonical account e-mail; on failure it returns a classified user-facing
// message instead of an error. Transport problems are logged and reported
// with the generic login message.
func (c *IdentityClient) SignIn(ctx context.Context, email, password string) (identity string, errMsg string) {
	var result signInResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(signInRequest{Email: email, Password: password, ReturnSecureToken: true}).
		SetResult(&result).
		SetError(&result).
		Post("/accounts:signInWithPassword")
	if err != nil {
		c.logger.Error("identity sign-in request failed", zap.Error(err))
		return "", MsgLoginFailed
	}

	if resp.IsError() {
		return "", classifySignInError(result.Error.Message)
	}

	if result.Email != "" {
		return result.Email, ""
	}
	return email, ""
}

// classifySignInError maps provider error codes to operator-facing messages.
// Codes may carry a suffix such as "TOO_MANY_ATTEMPTS_TRY_LATER : ...", so
// matching is by prefix.
func classifySignInError(code string) string {
	switch {
	case strings.HasPrefix(code, "INVALID_EMAIL"):
		return MsgInvalidEmail
	case strings.HasPrefix(code, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"):
		return MsgWrongCredentials
	case strings.HasPrefix(code, "INVALID_PASSWORD"):
		return MsgWrongPassword
	default:
		return MsgLoginFailed
	}
}

type resetRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email"`
}

// SendPasswordReset asks the provider to dispatch a reset e-mail. Returns
// an empty string on success, a user-facing message otherwise.
func (c *IdentityClient) SendPasswordReset(ctx context.Context, email string) (errMsg string) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(resetRequest{RequestType: "PASSWORD_RESET", Email: email}).
		Post("/accounts:sendOobCode")
	if err != nil {
		c.logger.Error("password reset request failed", zap.Error(err))
		return MsgResetFailed
	}
	if resp.IsError() {
		return MsgResetFailed
	}
	return ""
}
