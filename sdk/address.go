package sdk

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// PubkeyLength is the size of every wallet identity and derived account key.
const PubkeyLength = 32

var ErrInvalidPubkey = errors.New("invalid pubkey")

// Pubkey is a wallet identity or a derived account address. Its text form is base58.
type Pubkey [PubkeyLength]byte

// String returns the base58 form, the same text wallets show to users.
// Example payload: sdk.Pubkey{1}.String()
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// Bytes hands out a copy so callers can use the key as a derivation seed.
func (p Pubkey) Bytes() []byte {
	out := make([]byte, PubkeyLength)
	copy(out, p[:])
	return out
}

// IsZero reports whether no key was given.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// MarshalText keeps config files and JSON payloads readable.
func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText accepts the base58 form.
func (p *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePubkey decodes a base58 string and insists on exactly 32 bytes.
// Example payload: sdk.ParsePubkey("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
func ParsePubkey(s string) (Pubkey, error) {
	var out Pubkey
	if s == "" {
		return out, fmt.Errorf("%w: empty", ErrInvalidPubkey)
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidPubkey, err)
	}
	if len(raw) != PubkeyLength {
		return out, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPubkey, PubkeyLength, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

// MustPubkey is the panic variant used for constants and tests.
func MustPubkey(s string) Pubkey {
	p, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return p
}
