package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/marcdejesus/fitness/config"
	"github.com/marcdejesus/fitness/models"
	"github.com/marcdejesus/fitness/utils"

	"github.com/google/uuid"
)

// ProviderUser is the provider's view of an account: its stable subject
// identifier plus the email it was registered with.
type ProviderUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type ProviderSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IdentityProvider is the contract with the external account store. The
// provider owns passwords and sessions; this service only keeps profiles
// keyed by the provider's subject identifier.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*ProviderUser, error)
	SignIn(ctx context.Context, email, password string) (*ProviderUser, *ProviderSession, error)
	RecoverPassword(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

var ErrProviderRejected = errors.New("identity provider rejected the request")

// NewIdentityProviderFromEnv picks the hosted provider when PROVIDER_URL
// is configured, otherwise the database-backed local provider.
func NewIdentityProviderFromEnv() IdentityProvider {
	if url := os.Getenv("PROVIDER_URL"); url != "" {
		return &hostedProvider{
			baseURL: url,
			apiKey:  os.Getenv("PROVIDER_API_KEY"),
			client:  &http.Client{Timeout: 10 * time.Second},
		}
	}
	return &localProvider{}
}

// --- hosted provider (GoTrue-style REST API) ---

type hostedProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type hostedAuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         ProviderUser `json:"user"`
	// signup responses carry the user at the top level instead
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (p *hostedProvider) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: %s", ErrProviderRejected, resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (p *hostedProvider) SignUp(ctx context.Context, email, password string) (*ProviderUser, error) {
	var out hostedAuthResponse
	err := p.post(ctx, "/auth/v1/signup", map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	user := out.User
	if user.ID == "" {
		user = ProviderUser{ID: out.ID, Email: out.Email}
	}
	if user.ID == "" {
		return nil, ErrProviderRejected
	}
	return &user, nil
}

func (p *hostedProvider) SignIn(ctx context.Context, email, password string) (*ProviderUser, *ProviderSession, error) {
	var out hostedAuthResponse
	err := p.post(ctx, "/auth/v1/token?grant_type=password",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, nil, err
	}
	if out.User.ID == "" || out.AccessToken == "" {
		return nil, nil, ErrProviderRejected
	}
	return &out.User, &ProviderSession{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}, nil
}

func (p *hostedProvider) RecoverPassword(ctx context.Context, email string) error {
	return p.post(ctx, "/auth/v1/recover", map[string]string{"email": email}, nil)
}

func (p *hostedProvider) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	// The hosted provider completes resets through its own email flow.
	return errors.New("password reset confirmation is handled by the identity provider")
}

// --- local provider (development / self-hosted deployments) ---

// localProvider stores credentials in our own database and mints subject
// identifiers itself. Tokens it issues are shape-compatible with the
// resolver: HS256 JWTs when PROVIDER_JWT_SECRET is set, opaque
// "subject:random" strings otherwise.
type localProvider struct{}

func (p *localProvider) SignUp(ctx context.Context, email, password string) (*ProviderUser, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	cred := models.LocalCredential{
		Email:        email,
		PasswordHash: hash,
		SubjectID:    uuid.NewString(),
	}
	if err := config.DB.WithContext(ctx).Create(&cred).Error; err != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrProviderRejected)
	}
	return &ProviderUser{ID: cred.SubjectID, Email: cred.Email}, nil
}

func (p *localProvider) SignIn(ctx context.Context, email, password string) (*ProviderUser, *ProviderSession, error) {
	var cred models.LocalCredential
	if err := config.DB.WithContext(ctx).Where("email = ?", email).First(&cred).Error; err != nil {
		return nil, nil, fmt.Errorf("%w: invalid credentials", ErrProviderRejected)
	}
	if !utils.CheckPasswordHash(password, cred.PasswordHash) {
		return nil, nil, fmt.Errorf("%w: invalid credentials", ErrProviderRejected)
	}

	token, err := p.issueToken(&cred)
	if err != nil {
		return nil, nil, err
	}
	return &ProviderUser{ID: cred.SubjectID, Email: cred.Email},
		&ProviderSession{AccessToken: token}, nil
}

func (p *localProvider) issueToken(cred *models.LocalCredential) (string, error) {
	if os.Getenv("PROVIDER_JWT_SECRET") != "" {
		return utils.GenerateJWT(cred.SubjectID, cred.Email)
	}
	return cred.SubjectID + ":" + uuid.NewString(), nil
}

func (p *localProvider) RecoverPassword(ctx context.Context, email string) error {
	var cred models.LocalCredential
	if err := config.DB.WithContext(ctx).Where("email = ?", email).First(&cred).Error; err != nil {
		// Report success regardless, to avoid confirming registered emails.
		return nil
	}
	cred.ResetToken = uuid.NewString()
	cred.ResetTokenExp = time.Now().Add(15 * time.Minute)
	if err := config.DB.WithContext(ctx).Save(&cred).Error; err != nil {
		return err
	}
	return utils.SendResetEmail(cred.Email, cred.ResetToken)
}

func (p *localProvider) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	var cred models.LocalCredential
	err := config.DB.WithContext(ctx).Where("reset_token = ?", token).First(&cred).Error
	if err != nil || time.Now().After(cred.ResetTokenExp) {
		return fmt.Errorf("%w: invalid or expired reset token", ErrProviderRejected)
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	cred.PasswordHash = hash
	cred.ResetToken = ""
	cred.ResetTokenExp = time.Time{}
	return config.DB.WithContext(ctx).Save(&cred).Error
}
