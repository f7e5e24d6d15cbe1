package session

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// Cookie is the serializable form of one stored cookie.
type Cookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HTTPOnly bool      `json:"http_only,omitempty"`
}

// Jar is an http.CookieJar that additionally records every cookie the server
// sets, so the jar's contents can be snapshotted into [State] and restored
// later. Matching and public-suffix semantics are delegated to the stdlib
// jar; the record only exists because the stdlib jar cannot be enumerated.
type Jar struct {
	mu      sync.Mutex
	inner   *cookiejar.Jar
	entries map[string]Cookie
}

// NewJar creates an empty recording jar.
func NewJar() (*Jar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Jar{
		inner:   inner,
		entries: make(map[string]Cookie),
	}, nil
}

// SetCookies implements http.CookieJar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if j == nil || len(cookies) == 0 {
		return
	}
	j.inner.SetCookies(u, cookies)

	j.mu.Lock()
	defer j.mu.Unlock()

	for _, c := range cookies {
		domain := c.Domain
		if domain == "" {
			domain = u.Hostname()
		}
		path := c.Path
		if path == "" {
			path = "/"
		}
		key := domain + "\x00" + path + "\x00" + c.Name

		if c.MaxAge < 0 {
			delete(j.entries, key)
			continue
		}

		expires := c.Expires
		if c.MaxAge > 0 {
			expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second)
		}

		j.entries[key] = Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   domain,
			Path:     path,
			Expires:  expires,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
		}
	}
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	if j == nil {
		return nil
	}
	return j.inner.Cookies(u)
}

// Clear drops every stored cookie and its record. A credentialed login calls
// this so it never silently rides a stale session.
func (j *Jar) Clear() error {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner = inner
	j.entries = make(map[string]Cookie)
	return nil
}

// Snapshot returns the recorded cookies in a deterministic order.
func (j *Jar) Snapshot() []Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	keys := make([]string, 0, len(j.entries))
	for key := range j.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]Cookie, 0, len(keys))
	for _, key := range keys {
		out = append(out, j.entries[key])
	}
	return out
}

// Restore seeds the jar with previously snapshotted cookies. Expired cookies
// are skipped; everything else is set as a domain cookie so it matches the
// same hosts it was recorded for.
func (j *Jar) Restore(cookies []Cookie) {
	now := time.Now()

	for _, c := range cookies {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}

		host := strings.TrimPrefix(c.Domain, ".")
		if host == "" {
			continue
		}
		u := &url.URL{Scheme: "https", Host: host, Path: c.Path}

		j.SetCookies(u, []*http.Cookie{{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   host,
			Path:     c.Path,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		}})
	}
}
