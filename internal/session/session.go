package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// CookieName is the session cookie issued at login and cleared at logout.
const CookieName = "user_session"

// Lifetime is the fixed session length. The cookie is not refreshed on use;
// after 24h the client must log in again.
const Lifetime = 24 * time.Hour

var (
	ErrNoCookie       = errors.New("session cookie missing")
	ErrInvalidSession = errors.New("session cookie invalid")
	ErrBadSignature   = errors.New("session signature mismatch")
)

// User is the client-held identity payload. It is a point-in-time copy of the
// user row minus the password hash; it is only re-synced when the profile
// update endpoint re-issues the cookie.
type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (u User) IsAdmin() bool { return u.Role == "admin" }

func (u User) Expired() bool { return u.ExpiresAt.Before(time.Now()) }

// Codec signs and verifies user_session cookies. The cookie value is
// base64url(JSON payload) + "." + base64url(HMAC-SHA256(payload)).
type Codec struct {
	secret     []byte
	production bool
}

func NewCodec(secret string, production bool) *Codec {
	return &Codec{secret: []byte(secret), production: production}
}

func (c *Codec) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

// Encode serializes and signs the session user into a cookie-safe string.
func (c *Codec) Encode(u User) (string, error) {
	payload, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	enc := base64.RawURLEncoding
	return enc.EncodeToString(payload) + "." + enc.EncodeToString(c.sign(payload)), nil
}

// Decode verifies the signature and unmarshals the payload. Expiry is the
// caller's concern; an expired-but-authentic session decodes successfully.
func (c *Codec) Decode(value string) (User, error) {
	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 {
		return User{}, ErrInvalidSession
	}

	enc := base64.RawURLEncoding
	payload, err := enc.DecodeString(parts[0])
	if err != nil {
		return User{}, ErrInvalidSession
	}
	sig, err := enc.DecodeString(parts[1])
	if err != nil {
		return User{}, ErrInvalidSession
	}

	if !hmac.Equal(sig, c.sign(payload)) {
		return User{}, ErrBadSignature
	}

	var u User
	if err := json.Unmarshal(payload, &u); err != nil {
		return User{}, ErrInvalidSession
	}
	return u, nil
}

// Issue stamps the expiry, signs the payload and sets the cookie.
// Secure is only set in production so local HTTP setups keep working.
func (c *Codec) Issue(w http.ResponseWriter, u User) (User, error) {
	u.ExpiresAt = time.Now().Add(Lifetime)

	value, err := c.Encode(u)
	if err != nil {
		return User{}, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(Lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   c.production,
	})
	return u, nil
}

// Clear overwrites the cookie with an immediately expiring empty one.
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   c.production,
	})
}

// FromRequest reads and verifies the session cookie off a request.
func (c *Codec) FromRequest(r *http.Request) (User, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return User{}, ErrNoCookie
	}
	return c.Decode(cookie.Value)
}
