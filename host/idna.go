// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package host

import (
	"golang.org/x/net/idna"
)

var idnaProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.Transitional(false),
	idna.StrictDomainName(false),
)

// IDNA maps Unicode labels to ASCII-compatible encoding (xn--) and applies
// UTS #46 lookup mapping, including case folding. It is an optional
// Normalizer; the parser never calls it unless configured to.
func IDNA(domain string) (string, error) {
	return idnaProfile.ToASCII(domain)
}
