// Package cookie writes and verifies HMAC-SHA256 signed HTTP cookies.
//
// folio stores its session token in a signed cookie. A signing secret of at
// least 32 bytes is required:
//
//	m, err := cookie.New(cfg.CookieSecret, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//
//	m.SetSigned(w, "folio_session", token, 24*time.Hour)
//
//	token, err := m.GetSigned(r, "folio_session")
//	switch {
//	case errors.Is(err, cookie.ErrNotFound):
//		// no cookie
//	case errors.Is(err, cookie.ErrBadSig):
//		// tampered or signed with another secret
//	}
//
// Cookies are always HttpOnly. The signature covers the cookie name and value.
package cookie
