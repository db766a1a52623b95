// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package host classifies and parses the host component of a URL.
//
// A Host is one of four variants, fixed by the URL standard:
//
//   - Domain: a normalized, lowercase domain name
//   - IPv4Address: a 32-bit address, serialized as a.b.c.d
//   - IPv6Address: eight 16-bit pieces, serialized bracketed and compressed
//   - OpaqueHost: the percent-encoded host of a non-special URL
//
// Callers switch on the concrete type (or on Kind) to handle each variant:
//
//	h, err := host.Parse("0x7f.1", true)
//	switch v := h.(type) {
//	case host.IPv4Address:
//		fmt.Println(v) // 127.0.0.1
//	case host.Domain:
//		fmt.Println(v.Labels())
//	}
//
// Domain normalization is pluggable. ASCIILowercase is the default; IDNA maps
// Unicode labels to their ASCII-compatible (punycode) form.
package host
