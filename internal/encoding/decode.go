package encoding

import (
	"encoding/binary"
	"fmt"

	"keyward/internal/domain"
)

// DecodeBool decodes a single-byte boolean record.
func DecodeBool(b []byte) (bool, error) {
	if len(b) != 1 || b[0] > 1 {
		return false, fmt.Errorf("bool record: bad form (%d bytes): %w", len(b), domain.ErrSchemaMismatch)
	}
	return b[0] == 1, nil
}

// DecodeU8 decodes a single-byte unsigned integer record.
func DecodeU8(b []byte) (uint8, error) {
	if len(b) != 1 {
		return 0, fmt.Errorf("u8 record: bad form (%d bytes): %w", len(b), domain.ErrSchemaMismatch)
	}
	return b[0], nil
}

// DecodeIdentityList decodes a count-prefixed sequence of 32-byte account
// identities, preserving order. Short or trailing input is rejected.
func DecodeIdentityList(b []byte) ([]domain.AccountID, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("identity list record: missing count: %w", domain.ErrSchemaMismatch)
	}
	n := binary.LittleEndian.Uint32(b)
	body := b[4:]
	if uint64(len(body)) != uint64(n)*32 {
		return nil, fmt.Errorf("identity list record: want %d identities, have %d bytes: %w",
			n, len(body), domain.ErrSchemaMismatch)
	}
	out := make([]domain.AccountID, n)
	for i := range out {
		copy(out[i][:], body[i*32:])
	}
	return out, nil
}
