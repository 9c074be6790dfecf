package credential

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jonwraymond/oracleops/secret"
)

// SignerConfig configures a JWT signer.
type SignerConfig struct {
	// Issuer is written to the iss claim.
	Issuer string

	// Subject is written to the sub claim.
	Subject string

	// Audience is written to the aud claim. Optional.
	Audience string

	// TTL is the token lifetime.
	// Default: 5 minutes
	TTL time.Duration

	// Method is the signing method.
	// Options: "HS256" (default), "HS384", "HS512"
	Method string

	// KeyID is written to the kid header. Optional.
	KeyID string

	// Key is the signing key. It may be a literal, contain environment
	// variable references, or be a secretref.
	Key string

	// Resolver resolves secret references in Key. Optional.
	Resolver *secret.Resolver

	// Claims are extra claims merged into every token. Registered claims
	// set by the signer take precedence.
	Claims map[string]any

	// Now returns the current time. Used by tests.
	Now func() time.Time
}

// Signer mints short-lived JWTs for providers that authenticate requests
// with signed tokens. Tokens are cached and reminted shortly before expiry.
type Signer struct {
	config SignerConfig
	method jwt.SigningMethod

	mu      sync.Mutex
	key     []byte
	token   string
	expires time.Time
}

// Token renewal leeway before expiry.
const renewalLeeway = 30 * time.Second

// NewSigner creates a JWT signer.
func NewSigner(config SignerConfig) (*Signer, error) {
	if config.TTL <= 0 {
		config.TTL = 5 * time.Minute
	}
	if config.Method == "" {
		config.Method = "HS256"
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	var method jwt.SigningMethod
	switch config.Method {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, ErrUnsupportedMethod
	}

	if strings.TrimSpace(config.Key) == "" {
		return nil, ErrMissingSigningKey
	}

	return &Signer{config: config, method: method}, nil
}

// Name returns "jwt".
func (s *Signer) Name() string {
	return "jwt"
}

// Apply sets "Authorization: Bearer <token>" with a freshly minted or
// cached token.
func (s *Signer) Apply(ctx context.Context, req *http.Request) error {
	token, err := s.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// Token returns a signed token, minting a new one when the cached token
// is within the renewal leeway of its expiry.
func (s *Signer) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.config.Now()
	if s.token != "" && now.Before(s.expires.Add(-renewalLeeway)) {
		return s.token, nil
	}

	if s.key == nil {
		resolved, err := s.config.Resolver.ResolveValue(ctx, s.config.Key)
		if err != nil {
			return "", err
		}
		if resolved == "" {
			return "", ErrMissingSigningKey
		}
		s.key = []byte(resolved)
	}

	expires := now.Add(s.config.TTL)
	claims := jwt.MapClaims{}
	for k, v := range s.config.Claims {
		claims[k] = v
	}
	claims["iat"] = now.Unix()
	claims["exp"] = expires.Unix()
	claims["jti"] = uuid.NewString()
	if s.config.Issuer != "" {
		claims["iss"] = s.config.Issuer
	}
	if s.config.Subject != "" {
		claims["sub"] = s.config.Subject
	}
	if s.config.Audience != "" {
		claims["aud"] = s.config.Audience
	}

	token := jwt.NewWithClaims(s.method, claims)
	if s.config.KeyID != "" {
		token.Header["kid"] = s.config.KeyID
	}

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", err
	}

	s.token = signed
	s.expires = expires
	return signed, nil
}

// Ensure Signer implements Source.
var _ Source = (*Signer)(nil)
