package sdk

import (
	"encoding/binary"
	"errors"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/blake2b"
)

// derivationDomain is hashed after the seeds and program id so derived keys
// never coincide with hashes produced for any other purpose.
const derivationDomain = "ProgramDerivedAddress"

var (
	// ErrOnCurve means the hash is a valid ed25519 point and could have a private key.
	ErrOnCurve = errors.New("derived address is on the ed25519 curve")
	// ErrNoViableBump is returned when all 256 bumps land on the curve.
	ErrNoViableBump = errors.New("unable to find a viable bump seed")
)

// CreateProgramAddress hashes the seeds with the program id.
//
// Every seed is prefixed with its 4-byte little-endian length, so two seed
// tuples only share an encoding when they are equal. With blake2b-256 on top,
// distinct tuples give distinct addresses except with negligible probability.
// Addresses that decode as an edwards25519 point are rejected.
func CreateProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return Pubkey{}, err
	}
	var lenBuf [4]byte
	for _, seed := range seeds {
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(seed)))
		h.Write(lenBuf[:])
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(derivationDomain))

	var out Pubkey
	copy(out[:], h.Sum(nil))
	if isOnCurve(out) {
		return Pubkey{}, ErrOnCurve
	}
	return out, nil
}

// FindProgramAddress walks the bump from 255 down and returns the first
// off-curve address together with the bump that produced it.
// Example payload: sdk.FindProgramAddress([][]byte{[]byte("member"), wallet.Bytes()}, programID)
func FindProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{byte(bump)}
		addr, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.Is(err, ErrOnCurve) {
			return Pubkey{}, 0, err
		}
	}
	return Pubkey{}, 0, ErrNoViableBump
}

func isOnCurve(p Pubkey) bool {
	_, err := new(edwards25519.Point).SetBytes(p[:])
	return err == nil
}
