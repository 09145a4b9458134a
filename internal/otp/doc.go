// Package otp implements the in-memory one-time code registry backing email
// verification and password reset.
//
// Records live only in process memory: a restart invalidates every
// outstanding code, which is acceptable because codes are short-lived and
// the issuing flows can always be repeated. Each record is keyed by an
// opaque registry-assigned ID that the client echoes back together with the
// code, so the code alone is never sufficient to locate a record.
package otp
