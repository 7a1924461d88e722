// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and access token utilities.

# Passwords

Passwords are hashed with bcrypt. The cost is configurable so tests can run
at bcrypt.MinCost:

	hash, err := auth.HashPassword(password, cfg.BcryptCost)
	ok := auth.CheckPassword(password, hash)

CheckPassword never returns an error: a malformed hash is a mismatch.

# Access Tokens

Access tokens are HS256 JWTs carrying the user id, username, issuer,
issued-at, expiry and a random token id:

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	token, expiresAt, err := issuer.Issue(user.ID, user.Username)
	identity, err := issuer.Verify(token)

Verify rejects other algorithms, missing or past expiry, a foreign issuer
and bad signatures, all as ErrInvalidToken.

Tokens are stateless. There is no server-side revocation; logging out
means the client forgets its token.

# Bearer Header

	token, err := auth.BearerToken(r.Header.Get("Authorization"))
*/
package auth
