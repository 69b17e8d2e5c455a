// Package otp issues and verifies short-lived one-time codes.
//
// A challenge is addressed by a scope (the flow that minted it) and an
// unguessable token, and stores only a hash of the code together with a
// failed-attempt counter. Verification consumes the challenge on success
// and deletes it once the attempt budget is spent, so a code can never
// be used twice.
package otp
