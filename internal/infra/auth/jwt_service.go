package auth

import (
	"strings"
	"time"

	"postboard/config"
	"postboard/internal/domain/entity"
	"postboard/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sessionClaims is the signed payload of a session token.
// No exp is set: tokens live until the secret rotates.
type sessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte
	parser *jwt.Parser
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if strings.TrimSpace(cfg.Session.Secret) == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.Session.Secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
		now:    time.Now,
	}, nil
}

// Issue signs the identity into a compact JWT.
func (s *jwtService) Issue(identity entity.Identity) (string, error) {
	claims := sessionClaims{
		UserID: identity.UserID.String(),
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Verify validates the signature and the claim set. Every failure collapses
// into service.ErrInvalidToken so callers never see partial claims.
func (s *jwtService) Verify(tokenString string) (entity.Identity, error) {
	claims := &sessionClaims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return entity.Identity{}, service.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil || userID == uuid.Nil || claims.Email == "" {
		return entity.Identity{}, service.ErrInvalidToken
	}

	return entity.Identity{UserID: userID, Email: claims.Email}, nil
}
