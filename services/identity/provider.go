package identity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/studytrack/core"
	"github.com/trezcool/studytrack/core/auth"
)

const credentialNS = "cred"

var signingMethod = jwt.SigningMethodHS256

type (
	// Claims represents the authorization claims transmitted via a JWT.
	Claims struct {
		jwt.StandardClaims
		Email string `json:"email,omitempty"`
		Name  string `json:"name,omitempty"`
	}

	credential struct {
		ID           string    `json:"id"`
		Email        string    `json:"email"`
		Name         string    `json:"name"`
		PasswordHash []byte    `json:"password_hash"`
		CreatedAt    time.Time `json:"created_at"`
	}

	Options struct {
		SecretKey          string
		AppName            string
		JWTExpirationDelta time.Duration
	}

	// Provider is a local auth.Provider: bcrypt-hashed credentials kept in the KV store and HS256 tokens.
	Provider struct {
		kv      core.KVStore
		opts    Options
		nowFunc func() time.Time
		idFunc  func() string
	}
)

var _ auth.Provider = (*Provider)(nil)

func NewProvider(kv core.KVStore, opts Options) *Provider {
	vala.BeginValidation().Validate(
		vala.IsNotNil(kv, "kv"),
		vala.StringNotEmpty(opts.SecretKey, "opts.SecretKey"),
	).CheckAndPanic()

	return &Provider{
		kv:      kv,
		opts:    opts,
		nowFunc: time.Now,
		idFunc:  func() string { return uuid.New().String() },
	}
}

func credentialKey(email string) string { return credentialNS + ":" + email }

func (c credential) identity() auth.Identity {
	return auth.Identity{ID: c.ID, Email: c.Email, Name: c.Name}
}

func (p *Provider) getCredential(ctx context.Context, email string) (credential, error) {
	var cred credential
	data, err := p.kv.Get(ctx, credentialKey(email))
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return cred, auth.ErrInvalidCredentials
		}
		return cred, core.NewStoreError("get", credentialKey(email), err)
	}
	if err = json.Unmarshal(data, &cred); err != nil {
		return cred, core.NewStoreError("decode", credentialKey(email), err)
	}
	return cred, nil
}

func (p *Provider) SignUp(ctx context.Context, na auth.NewAccount) (auth.Identity, error) {
	if err := na.Validate(); err != nil {
		return auth.Identity{}, err
	}

	if _, err := p.getCredential(ctx, na.Email); err == nil {
		return auth.Identity{}, auth.ErrEmailExists
	} else if err != auth.ErrInvalidCredentials {
		return auth.Identity{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(na.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.Identity{}, errors.Wrap(err, "hashing password")
	}

	cred := credential{
		ID:           p.idFunc(),
		Email:        na.Email,
		Name:         na.Name,
		PasswordHash: hash,
		CreatedAt:    p.nowFunc().UTC(),
	}
	data, err := json.Marshal(cred)
	if err != nil {
		return auth.Identity{}, errors.Wrap(err, "encoding credential")
	}
	if err = p.kv.Set(ctx, credentialKey(cred.Email), data); err != nil {
		return auth.Identity{}, core.NewStoreError("set", credentialKey(cred.Email), err)
	}
	return cred.identity(), nil
}

func (p *Provider) SignIn(ctx context.Context, creds auth.Credentials) (string, auth.Identity, error) {
	if err := creds.Validate(); err != nil {
		return "", auth.Identity{}, err
	}

	cred, err := p.getCredential(ctx, creds.Email)
	if err != nil {
		return "", auth.Identity{}, err
	}
	if err = bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(creds.Password)); err != nil {
		return "", auth.Identity{}, auth.ErrInvalidCredentials
	}

	token, err := p.GenerateToken(cred.identity())
	if err != nil {
		return "", auth.Identity{}, err
	}
	return token, cred.identity(), nil
}

// GenerateToken generates a signed JWT token string for `id`.
func (p *Provider) GenerateToken(id auth.Identity) (string, error) {
	now := p.nowFunc()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    p.opts.AppName,
			Subject:   id.ID,
			ExpiresAt: now.Add(p.opts.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: id.Email,
		Name:  id.Name,
	}

	ss, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(p.opts.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// Verify parses and validates `token`; the returned identity comes from its claims.
func (p *Provider) Verify(_ context.Context, token string) (auth.Identity, error) {
	if token == "" {
		return auth.Identity{}, auth.ErrMissingToken
	}

	claims := new(Claims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != signingMethod.Alg() {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(p.opts.SecretKey), nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return auth.Identity{}, auth.ErrInvalidToken
	}
	return auth.Identity{ID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

func (p *Provider) Lookup(ctx context.Context, email string) (auth.Identity, error) {
	cred, err := p.getCredential(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		if err == auth.ErrInvalidCredentials {
			return auth.Identity{}, core.NewNotFoundError("user")
		}
		return auth.Identity{}, err
	}
	return cred.identity(), nil
}

// ResetPassword replaces the password of the account registered under `email`.
func (p *Provider) ResetPassword(ctx context.Context, email, pwd string) error {
	cred, err := p.getCredential(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		if err == auth.ErrInvalidCredentials {
			return core.NewNotFoundError("user")
		}
		return err
	}

	// same policy as signup
	na := auth.NewAccount{Email: cred.Email, Name: cred.Name, Password: pwd}
	if err = na.Validate(); err != nil {
		return err
	}

	if cred.PasswordHash, err = bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	data, err := json.Marshal(cred)
	if err != nil {
		return errors.Wrap(err, "encoding credential")
	}
	if err = p.kv.Set(ctx, credentialKey(cred.Email), data); err != nil {
		return core.NewStoreError("set", credentialKey(cred.Email), err)
	}
	return nil
}
