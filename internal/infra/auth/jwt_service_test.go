package auth

import (
	"strings"
	"testing"
	"time"

	"postboard/config"
	"postboard/internal/domain/entity"
	"postboard/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_session_secret_key_very_long_for_testing"

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.Session.Secret = testSecret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestTokenService(t)
	identity := entity.Identity{UserID: uuid.New(), Email: "a@x.com"}

	token, err := svc.Issue(identity)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestJWTService_TokenHasNoExpiry(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue(entity.Identity{UserID: uuid.New(), Email: "a@x.com"})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.NotContains(t, claims, "exp")
	assert.Contains(t, claims, "iat")
	assert.Contains(t, claims, "user_id")
	assert.Contains(t, claims, "email")
}

func TestJWTService_BitFlipInvalidates(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue(entity.Identity{UserID: uuid.New(), Email: "a@x.com"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// The first character of each segment carries six significant bits,
	// so any flip there changes the decoded bytes.
	offsets := []int{
		0,
		len(parts[0]) + 1,
		len(parts[0]) + 1 + len(parts[1]) + 1,
		len(parts[0]) + 1 + len(parts[1])/2,
	}

	for _, offset := range offsets {
		for bit := range 6 {
			mutated := []byte(token)
			mutated[offset] ^= 1 << bit

			_, err := svc.Verify(string(mutated))
			assert.ErrorIs(t, err, service.ErrInvalidToken, "offset %d bit %d", offset, bit)
		}
	}
}

func TestJWTService_RejectsMalformed(t *testing.T) {
	svc := newTestTokenService(t)

	for _, token := range []string{"", "clearly-not-a-jwt-token-format", "a.b.c", "..."} {
		got, err := svc.Verify(token)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
		assert.Equal(t, entity.Identity{}, got)
	}
}

func TestJWTService_RejectsOtherSecret(t *testing.T) {
	svc := newTestTokenService(t)

	other := &config.Config{}
	other.Session.Secret = "another_secret"
	otherSvc, err := NewJWTService(other)
	require.NoError(t, err)

	token, err := otherSvc.Issue(entity.Identity{UserID: uuid.New(), Email: "a@x.com"})
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestJWTService_RejectsUnexpectedAlgorithms(t *testing.T) {
	svc := newTestTokenService(t)
	claims := sessionClaims{UserID: uuid.NewString(), Email: "a@x.com"}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(unsigned)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestJWTService_RejectsIncompleteClaims(t *testing.T) {
	svc := newTestTokenService(t)

	cases := map[string]sessionClaims{
		"missing user id": {Email: "a@x.com"},
		"bad user id":     {UserID: "not-a-uuid", Email: "a@x.com"},
		"nil user id":     {UserID: uuid.Nil.String(), Email: "a@x.com"},
		"missing email":   {UserID: uuid.NewString()},
	}

	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
			require.NoError(t, err)

			_, err = svc.Verify(token)
			assert.ErrorIs(t, err, service.ErrInvalidToken)
		})
	}
}

func TestJWTService_OldTokensStayValid(t *testing.T) {
	svc := newTestTokenService(t)
	js, ok := svc.(*jwtService)
	require.True(t, ok)
	js.now = func() time.Time { return time.Now().Add(-5 * 365 * 24 * time.Hour) }

	identity := entity.Identity{UserID: uuid.New(), Email: "a@x.com"}
	token, err := svc.Issue(identity)
	require.NoError(t, err)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "session secret must be provided")
}
