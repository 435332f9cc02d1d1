package service

import (
	"time"

	"github.com/tealsec/authd/internal/auth/domain"
	"github.com/tealsec/authd/pkg/jwtx"
)

// TokenIssuer mints the access/refresh token pair for a verified identity.
// Both kinds share one claim schema; the kind claim is the only difference,
// and the TTL policy lives here.
type TokenIssuer struct {
	Signer     jwtx.Signer
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// IssueAccessToken mints a short-lived access token for the user.
func (i *TokenIssuer) IssueAccessToken(user domain.User) (string, error) {
	return i.issue(user, jwtx.TokenKindAccess, i.AccessTTL)
}

// IssueRefreshToken mints a long-lived refresh token for the user.
func (i *TokenIssuer) IssueRefreshToken(user domain.User) (string, error) {
	return i.issue(user, jwtx.TokenKindRefresh, i.RefreshTTL)
}

func (i *TokenIssuer) issue(user domain.User, kind jwtx.TokenKind, ttl time.Duration) (string, error) {
	claims := jwtx.NewClaims(
		user.ID,       // subject
		user.Username, // username claim
		kind,          // access or refresh
		ttl,           // exp = iat + ttl
		time.Now(),    // issuance stamp, truncated to seconds by NewClaims
	)
	return i.Signer.Sign(claims)
}
