// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccountKind distinguishes the two token audiences issued by the service.
// User and admin accounts are separate bounded contexts; a token minted for
// one must never be accepted where the other is expected.
type AccountKind string

const (
	// KindUser marks tokens issued to end-user accounts.
	KindUser AccountKind = "user"

	// KindAdmin marks tokens issued to administrator accounts.
	KindAdmin AccountKind = "admin"
)

// Claims is the JWT claim set carried by every bearer token issued by the
// service.
//
// It embeds [jwt.RegisteredClaims] for the standard claim set (sub, exp, iat,
// iss) and adds the identity attributes the service needs at verify time.
// The subject claim holds the account identifier.
type Claims struct {
	jwt.RegisteredClaims

	// Kind is the account audience of the token ("user" or "admin").
	Kind AccountKind `json:"kind"`

	// Email is the account email for user tokens; empty for admin tokens.
	Email string `json:"email,omitempty"`

	// Username is the admin login for admin tokens; empty for user tokens.
	Username string `json:"username,omitempty"`

	// Role is the admin privilege tier for admin tokens. It is identity
	// information only: privileged operations re-resolve the current role
	// from storage and must not trust this value.
	Role *AdminRole `json:"role,omitempty"`
}

// Token wraps an issued or parsed JWT with convenience accessors for
// authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
type Token struct {
	// Claims is the decoded claim set of the token.
	Claims Claims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	// Excluded from JSON serialization; use [Token.String] to retrieve it.
	SignedString string `json:"-"`
}

// SubjectID returns the account identifier carried in the "sub" claim.
func (t Token) SubjectID() string {
	return t.Claims.Subject
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
