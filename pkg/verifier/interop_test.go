package verifier_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paytoken/pkg/verifier"
)

// Tokens minted by a standard HS256 JWT issuer share the wire format.
func TestInterop_GolangJWTIssuer(t *testing.T) {
	t.Parallel()

	secret, err := verifier.NewSecretFromString(testSecret)
	require.NoError(t, err)

	mint := func(t *testing.T, claims jwt.MapClaims, method jwt.SigningMethod, key []byte) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	t.Run("hs256 token is accepted", func(t *testing.T) {
		t.Parallel()
		token := mint(t, jwt.MapClaims{
			"userId":    "u1",
			"paymentId": "p1",
			"exp":       testNow.Add(time.Minute).Unix(),
			"sub":       "ignored",
		}, jwt.SigningMethodHS256, []byte(testSecret))

		res := verifier.Verify(token, secret, testNow)
		require.True(t, res.Valid)
		assert.Equal(t, verifier.Claims{UserID: "u1", PaymentID: "p1"}, *res.Payload)
	})

	t.Run("hs512 token is rejected regardless of header", func(t *testing.T) {
		t.Parallel()
		token := mint(t, jwt.MapClaims{"userId": "u1", "paymentId": "p1"}, jwt.SigningMethodHS512, []byte(testSecret))

		res := verifier.Verify(token, secret, testNow)
		assert.Equal(t, verifier.ReasonInvalidSignature, res.Reason)
	})

	t.Run("expired per both implementations", func(t *testing.T) {
		t.Parallel()
		token := mint(t, jwt.MapClaims{
			"userId":    "u1",
			"paymentId": "p1",
			"exp":       testNow.Unix(),
		}, jwt.SigningMethodHS256, []byte(testSecret))

		assert.Equal(t, verifier.ReasonTokenExpired, verifier.Verify(token, secret, testNow).Reason)

		_, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte(testSecret), nil },
			jwt.WithValidMethods([]string{"HS256"}),
			jwt.WithTimeFunc(func() time.Time { return testNow }),
		)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})
}

// Tokens from Signer parse with a standard JWT library.
func TestInterop_SignerOutput(t *testing.T) {
	t.Parallel()

	signer, _ := newPair(t)
	token := sign(t, signer, validClaims())

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte(testSecret), nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return testNow }),
	)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "u1", claims["userId"])
	assert.Equal(t, "p1", claims["paymentId"])
}
