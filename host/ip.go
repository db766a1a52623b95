// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package host

import (
	"fmt"
	"strconv"
	"strings"
)

// IPv4Address is an IPv4 address stored as a 32-bit unsigned integer.
type IPv4Address uint32

func (IPv4Address) Kind() Kind { return KindIPv4 }
func (IPv4Address) sealed()    {}

// Octets returns the address in network byte order.
func (a IPv4Address) Octets() [4]byte {
	return [4]byte{byte(a >> 24), byte(a >> 16), byte(a >> 8), byte(a)}
}

func (a IPv4Address) String() string {
	o := a.Octets()
	var b strings.Builder
	for i, n := range o {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(int(n)))
	}
	return b.String()
}

func parseIPv4(domain string) (IPv4Address, error) {
	parts := strings.Split(domain, ".")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > 4 {
		return 0, fmt.Errorf("%w: %q has more than four parts", ErrInvalidIPv4, domain)
	}

	numbers := make([]uint64, len(parts))
	for i, p := range parts {
		v, overflow, ok := parseIPv4Number(p)
		if !ok {
			return 0, fmt.Errorf("%w: %q is not a number in %q", ErrInvalidIPv4, p, domain)
		}
		if overflow {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalidIPv4, domain)
		}
		numbers[i] = v
	}

	last := len(numbers) - 1
	for _, n := range numbers[:last] {
		if n > 255 {
			return 0, fmt.Errorf("%w: component of %q exceeds 255", ErrInvalidIPv4, domain)
		}
	}
	if numbers[last] >= 1<<(8*(5-len(numbers))) {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidIPv4, domain)
	}

	addr := numbers[last]
	for i, n := range numbers[:last] {
		addr += n << (8 * (3 - i))
	}
	return IPv4Address(addr), nil
}

// IPv6Address holds the eight 16-bit pieces of an IPv6 address.
type IPv6Address [8]uint16

func (IPv6Address) Kind() Kind { return KindIPv6 }
func (IPv6Address) sealed()    {}

// String returns the bracketed form with the longest run of two or more zero
// pieces compressed to "::". Ties go to the leftmost run.
func (a IPv6Address) String() string {
	return "[" + a.Compressed() + "]"
}

// Compressed is String without the brackets.
func (a IPv6Address) Compressed() string {
	start, length := -1, 1
	for i := 0; i < len(a); {
		if a[i] != 0 {
			i++
			continue
		}
		j := i
		for j < len(a) && a[j] == 0 {
			j++
		}
		if j-i > length {
			start, length = i, j-i
		}
		i = j
	}

	var b strings.Builder
	skipping := false
	for i, piece := range a {
		if skipping {
			if piece == 0 {
				continue
			}
			skipping = false
		}
		if i == start {
			if i == 0 {
				b.WriteString("::")
			} else {
				b.WriteByte(':')
			}
			skipping = true
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(piece), 16))
		if i != len(a)-1 {
			b.WriteByte(':')
		}
	}
	return b.String()
}

func parseIPv6(input string) (IPv6Address, error) {
	var addr IPv6Address
	fail := func(reason string) (IPv6Address, error) {
		return IPv6Address{}, fmt.Errorf("%w: %s in %q", ErrInvalidIPv6, reason, input)
	}

	pieceIndex, compress, p := 0, -1, 0
	if p < len(input) && input[p] == ':' {
		if !strings.HasPrefix(input, "::") {
			return fail("leading single colon")
		}
		p += 2
		pieceIndex++
		compress = pieceIndex
	}

	for p < len(input) {
		if pieceIndex == 8 {
			return fail("too many pieces")
		}
		if input[p] == ':' {
			if compress != -1 {
				return fail("multiple compressions")
			}
			p++
			pieceIndex++
			compress = pieceIndex
			continue
		}

		value, length := 0, 0
		for length < 4 && p < len(input) && isDigitIn(input[p], 16) {
			n, _ := strconv.ParseUint(input[p:p+1], 16, 8)
			value = value*0x10 + int(n)
			p++
			length++
		}

		if p < len(input) && input[p] == '.' {
			if length == 0 {
				return fail("empty piece before IPv4 part")
			}
			p -= length
			if pieceIndex > 6 {
				return fail("IPv4 part does not fit")
			}
			numbersSeen := 0
			for p < len(input) {
				ipv4Piece := -1
				if numbersSeen > 0 {
					if input[p] != '.' || numbersSeen >= 4 {
						return fail("malformed IPv4 part")
					}
					p++
				}
				if p >= len(input) || !isDigitIn(input[p], 10) {
					return fail("malformed IPv4 part")
				}
				for p < len(input) && isDigitIn(input[p], 10) {
					n := int(input[p] - '0')
					switch ipv4Piece {
					case -1:
						ipv4Piece = n
					case 0:
						return fail("leading zero in IPv4 part")
					default:
						ipv4Piece = ipv4Piece*10 + n
					}
					if ipv4Piece > 255 {
						return fail("IPv4 part exceeds 255")
					}
					p++
				}
				addr[pieceIndex] = addr[pieceIndex]*0x100 + uint16(ipv4Piece)
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieceIndex++
				}
			}
			if numbersSeen != 4 {
				return fail("IPv4 part too short")
			}
			break
		} else if p < len(input) && input[p] == ':' {
			p++
			if p >= len(input) {
				return fail("trailing colon")
			}
		} else if p < len(input) {
			return fail("unexpected character")
		}

		addr[pieceIndex] = uint16(value)
		pieceIndex++
	}

	if compress != -1 {
		swaps := pieceIndex - compress
		pieceIndex = 7
		for pieceIndex != 0 && swaps > 0 {
			addr[pieceIndex], addr[compress+swaps-1] = addr[compress+swaps-1], addr[pieceIndex]
			pieceIndex--
			swaps--
		}
	} else if pieceIndex != 8 {
		return fail("too few pieces")
	}
	return addr, nil
}
