package session

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// claims is the cookie payload. The cookie has no expiry of its own and
// lives as long as the browser session.
type claims struct {
	jwt.RegisteredClaims
	Role    Role    `json:"role,omitempty"`
	Name    string  `json:"name,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`
}

// CookieStore keeps the whole session in an HS256-signed cookie.
type CookieStore struct {
	name   string
	key    []byte
	secure bool
}

func NewCookieStore(name string, key []byte, secure bool) *CookieStore {
	return &CookieStore{name: name, key: key, secure: secure}
}

// Load decodes the session cookie. A missing, tampered or malformed cookie
// yields an anonymous session.
func (s *CookieStore) Load(r *http.Request) *Session {
	ck, err := r.Cookie(s.name)
	if err != nil || ck.Value == "" {
		return New()
	}

	var cl claims
	token, err := jwt.ParseWithClaims(ck.Value, &cl, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return New()
	}

	sess := &Session{flashes: cl.Flashes}
	switch cl.Role {
	case RoleAdmin:
		sess.identity = Admin{}
	case RolePatient:
		sess.identity = Patient{ID: cl.Subject, Name: cl.Name}
	case RoleDoctor:
		sess.identity = Doctor{ID: cl.Subject, Name: cl.Name}
	}
	return sess
}

// Save writes the session cookie, or expires it when the session is empty.
func (s *CookieStore) Save(w http.ResponseWriter, sess *Session) error {
	if sess.identity == nil && len(sess.flashes) == 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     s.name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
		return nil
	}

	value, err := s.encode(sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *CookieStore) encode(sess *Session) (string, error) {
	cl := claims{
		RegisteredClaims: jwt.RegisteredClaims{ID: uuid.NewString()},
		Flashes:          sess.flashes,
	}
	switch id := sess.identity.(type) {
	case Admin:
		cl.Role = RoleAdmin
	case Patient:
		cl.Role = RolePatient
		cl.Subject = id.ID
		cl.Name = id.Name
	case Doctor:
		cl.Role = RoleDoctor
		cl.Subject = id.ID
		cl.Name = id.Name
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}
