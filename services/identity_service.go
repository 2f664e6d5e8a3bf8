package services

import (
	"context"
	"errors"
	"strings"

	"github.com/marcdejesus/fitness/config"
	"github.com/marcdejesus/fitness/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm/clause"
)

// SubjectClaim is what a credential yields before local resolution: the
// provider's subject identifier plus an email to seed a profile with.
type SubjectClaim struct {
	Subject string
	Email   string
}

// errShapeMismatch signals "not this credential shape, try the next one".
// Any other error from a matcher is terminal for the request.
var errShapeMismatch = errors.New("credential shape mismatch")

// AuthError is an authentication failure with a caller-visible reason.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

type shapeMatcher func(token string) (*SubjectClaim, error)

// IdentityService maps bearer credentials onto local UserProfile rows.
//
// Three credential shapes are accepted, tried in order:
//
//  1. signed-claim bearer: an HS256 token verified against the provider
//     secret, when that secret is configured. A bad signature is rejected
//     outright, never passed down the chain.
//  2. unverified-claim bearer: the same token structure when no provider
//     secret is configured. Claims are extracted WITHOUT signature
//     verification; the provider's signing key is external and rotating,
//     so trust rests on the deployment's upstream-verified transport.
//     This is a deliberate, accepted weakening of the trust boundary,
//     not a bug to fix here.
//  3. opaque simple token: anything else. The part before the first ':'
//     (or the whole string) is the subject; an email is synthesized.
type IdentityService struct {
	providerSecret []byte
}

func NewIdentityService(providerSecret string) *IdentityService {
	return &IdentityService{providerSecret: []byte(providerSecret)}
}

// ParseCredential classifies a raw bearer token into a SubjectClaim by
// running the matchers in priority order; first match wins.
func (s *IdentityService) ParseCredential(token string) (*SubjectClaim, error) {
	if token == "" {
		return nil, &AuthError{Reason: "empty credential"}
	}
	matchers := []shapeMatcher{
		s.matchSignedBearer,
		s.matchUnverifiedBearer,
		matchOpaqueToken,
	}
	for _, match := range matchers {
		claim, err := match(token)
		if errors.Is(err, errShapeMismatch) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return claim, nil
	}
	return nil, &AuthError{Reason: "unrecognized credential"}
}

// looksLikeJWT is a cheap structural check: header.payload.signature.
func looksLikeJWT(token string) bool {
	return strings.Count(token, ".") == 2
}

func (s *IdentityService) matchSignedBearer(token string) (*SubjectClaim, error) {
	if len(s.providerSecret) == 0 || !looksLikeJWT(token) {
		return nil, errShapeMismatch
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.providerSecret, nil
	})
	if err != nil || !parsed.Valid {
		// Verification is configured, so a failure is terminal.
		return nil, &AuthError{Reason: "invalid token"}
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &AuthError{Reason: "invalid claims"}
	}
	return claimFromMap(claims)
}

func (s *IdentityService) matchUnverifiedBearer(token string) (*SubjectClaim, error) {
	if len(s.providerSecret) != 0 || !looksLikeJWT(token) {
		return nil, errShapeMismatch
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, &AuthError{Reason: "invalid token format"}
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" || email == "" {
		return nil, &AuthError{Reason: "invalid token format"}
	}
	return &SubjectClaim{Subject: sub, Email: email}, nil
}

func matchOpaqueToken(token string) (*SubjectClaim, error) {
	subject := token
	if i := strings.Index(token, ":"); i >= 0 {
		subject = token[:i]
	}
	if subject == "" {
		return nil, &AuthError{Reason: "empty credential"}
	}
	return &SubjectClaim{Subject: subject, Email: subject + "@example.com"}, nil
}

func claimFromMap(claims jwt.MapClaims) (*SubjectClaim, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, &AuthError{Reason: "invalid token"}
	}
	email, _ := claims["email"].(string)
	if email == "" {
		email = sub + "@example.com"
	}
	return &SubjectClaim{Subject: sub, Email: email}, nil
}

// Resolve maps a SubjectClaim onto a UserProfile, creating one on first
// sight. The insert is an atomic upsert keyed on the unique user_id
// column, so concurrent first-contacts from the same subject converge on
// a single row instead of racing a read-then-write check.
func (s *IdentityService) Resolve(claim *SubjectClaim) (*models.UserProfile, error) {
	profile := models.UserProfile{
		UserID:      claim.Subject,
		Email:       claim.Email,
		DisplayName: emailLocalPart(claim.Email),
	}
	err := config.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&profile).Error
	if err != nil {
		return nil, err
	}

	var out models.UserProfile
	if err := config.DB.Where("user_id = ?", claim.Subject).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveHeader handles a raw Authorization header value. An absent header
// is "unauthenticated", not an error: both returns are nil and the route's
// policy decides whether that is acceptable.
func (s *IdentityService) ResolveHeader(header string) (*models.UserProfile, string, error) {
	token := ""
	switch {
	case header == "":
		return nil, "", nil
	case strings.HasPrefix(header, "Bearer "):
		token = strings.TrimPrefix(header, "Bearer ")
	case strings.HasPrefix(header, "Token "):
		token = strings.TrimPrefix(header, "Token ")
	default:
		return nil, "", &AuthError{Reason: "unsupported authorization scheme"}
	}

	claim, err := s.ParseCredential(strings.TrimSpace(token))
	if err != nil {
		return nil, "", err
	}
	profile, err := s.Resolve(claim)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// --- request context attachment ---

type identityCtxKey struct{}

// WithIdentity threads the resolved profile through the request context.
func WithIdentity(ctx context.Context, profile *models.UserProfile) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, profile)
}

// IdentityFrom returns the resolved profile, if any, from a request context.
func IdentityFrom(ctx context.Context) (*models.UserProfile, bool) {
	p, ok := ctx.Value(identityCtxKey{}).(*models.UserProfile)
	return p, ok
}
