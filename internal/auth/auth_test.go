package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
)

type AuthSuite struct {
	suite.Suite
	issuer *Issuer
	userID uuid.UUID
	now    time.Time
}

func (s *AuthSuite) SetupTest() {
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.userID = uuid.New()
	s.issuer = NewIssuer("test-secret", time.Hour)
	s.issuer.now = func() time.Time { return s.now }
}

func (s *AuthSuite) TestIssueAndParse() {
	token, err := s.issuer.Issue(s.userID, "alice")
	s.Require().NoError(err)

	claims, err := s.issuer.Parse(token)
	s.Require().NoError(err)
	s.Equal(s.userID, claims.UserID)
	s.Equal("alice", claims.Username)
}

func (s *AuthSuite) TestExpired() {
	token, err := s.issuer.Issue(s.userID, "alice")
	s.Require().NoError(err)

	s.now = s.now.Add(2 * time.Hour)

	_, err = s.issuer.Parse(token)
	s.ErrorIs(err, apperr.ErrUnauthorized)
}

func (s *AuthSuite) TestWrongSecret() {
	token, err := NewIssuer("other-secret", time.Hour).Issue(s.userID, "alice")
	s.Require().NoError(err)

	_, err = s.issuer.Parse(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *AuthSuite) TestRejectsNoneAlgorithm() {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: s.userID})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	s.Require().NoError(err)

	_, err = s.issuer.Parse(signed)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *AuthSuite) TestMiddleware() {
	var seen uuid.UUID

	h := s.issuer.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	token, err := s.issuer.Issue(s.userID, "alice")
	s.Require().NoError(err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{name: "Missing", header: "", want: http.StatusUnauthorized},
		{name: "NotBearer", header: "Token " + token, want: http.StatusUnauthorized},
		{name: "Garbage", header: "Bearer abc.def.ghi", want: http.StatusUnauthorized},
		{name: "Valid", header: "Bearer " + token, want: http.StatusNoContent},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := httptest.NewRequest(http.MethodGet, "/api/receipts", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			s.Equal(tc.want, rec.Code)
		})
	}

	s.Equal(s.userID, seen)
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}
