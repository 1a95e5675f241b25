package types

import (
	"encoding/base64"
	"math/big"
	"strings"
)

// ReadPayID decodes an opaque payment identifier into the numeric order id
// it encodes, as a base-10 string. Accepted encodings, tried in order:
// decimal digits, 0x-prefixed hex, and unpadded base64url big-endian bytes.
func ReadPayID(payID string) (string, error) {
	if payID == "" {
		return "", Errorf(ErrInvalidPayID, "empty pay id")
	}

	if n, ok := new(big.Int).SetString(payID, 10); ok && n.Sign() >= 0 {
		return n.String(), nil
	}

	if strings.HasPrefix(payID, "0x") {
		if n, ok := new(big.Int).SetString(payID[2:], 16); ok {
			return n.String(), nil
		}
		return "", Errorf(ErrInvalidPayID, "invalid pay id %q", payID)
	}

	if b, err := base64.RawURLEncoding.DecodeString(payID); err == nil && len(b) > 0 {
		return new(big.Int).SetBytes(b).String(), nil
	}

	return "", Errorf(ErrInvalidPayID, "invalid pay id %q", payID)
}
