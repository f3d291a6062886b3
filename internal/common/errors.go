// Package common defines the error taxonomy shared by the zkLogin client
// components. Callers match these values with errors.Is; producers wrap them
// with context via fmt.Errorf("...: %w", ...).
package common

import "errors"

var (
	// ErrUserAbsent means the page carried no identity token. This is the
	// normal fresh-visit case, not a failure.
	ErrUserAbsent = errors.New("no identity token in url")

	// ErrMalformedToken means the token could not be decoded or lacks a
	// required claim.
	ErrMalformedToken = errors.New("malformed identity token")

	// ErrSessionMissing means there is no setup record to resume.
	ErrSessionMissing = errors.New("no login setup to resume")

	// ErrDuplicateAccount means an account with the same address is stored.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrServiceFailure covers salt, proof and ledger endpoints that are
	// unreachable or answer with an error.
	ErrServiceFailure = errors.New("external service failure")

	// ErrSubmissionFailure covers transaction signing and broadcast failures.
	ErrSubmissionFailure = errors.New("transaction submission failed")

	ErrUnknownProvider = errors.New("unknown identity provider")
)
