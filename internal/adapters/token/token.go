// Package token issues media-session tokens for the conferencing provider.
// The rest of the server treats it as an opaque issue function.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotConfigured = errors.New("token credentials not configured")

type Issuer struct {
	appID       string
	certificate string
	ttl         time.Duration
}

func NewIssuer(appID, certificate string, ttl time.Duration) *Issuer {
	return &Issuer{appID: appID, certificate: certificate, ttl: ttl}
}

func (i *Issuer) AppID() string { return i.appID }

func (i *Issuer) Configured() bool {
	return i.appID != "" && i.certificate != ""
}

func (i *Issuer) CertificateConfigured() bool {
	return i.certificate != ""
}

// Issue signs a channel-scoped token for one user. The expiry is returned
// alongside so callers can report it without parsing the token back.
func (i *Issuer) Issue(channel, uid string) (string, time.Time, error) {
	if !i.Configured() {
		return "", time.Time{}, ErrNotConfigured
	}
	expiry := time.Now().Add(i.ttl)
	claims := jwt.MapClaims{
		"sub":     uid,
		"app_id":  i.appID,
		"channel": channel,
		"iat":     time.Now().Unix(),
		"exp":     expiry.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(i.certificate))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiry, nil
}
