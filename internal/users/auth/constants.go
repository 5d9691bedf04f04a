// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// MaxFailedLogins is the number of wrong passwords accepted per login
	// identifier inside FailedLoginWindow before further attempts are refused.
	MaxFailedLogins = 5

	// FailedLoginWindow is how long failed attempts are remembered.
	FailedLoginWindow = 15 * time.Minute

	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 8
)
