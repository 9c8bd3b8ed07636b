package esplora

import (
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

// BlockIdentifier names a block either by height or by hash.
type BlockIdentifier struct {
	Height uint64
	Hash   string
	ByHash bool
}

func (id BlockIdentifier) String() string {
	if id.ByHash {
		return id.Hash
	}
	return strconv.FormatUint(id.Height, 10)
}

// ParseBlockIdentifier parses s as a block height when it consists of
// digits only, and as a block hash otherwise.
func ParseBlockIdentifier(s string) (BlockIdentifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BlockIdentifier{}, errors.Wrap(ErrInvalidBlockIdentifier, "empty block identifier")
	}
	if isDigits(s) {
		height, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return BlockIdentifier{}, errors.Wrapf(ErrInvalidBlockIdentifier, "height %s: %s", s, err)
		}
		return BlockIdentifier{Height: height}, nil
	}
	hash, err := normalizeHash(s)
	if err != nil {
		return BlockIdentifier{}, errors.Wrapf(ErrInvalidBlockIdentifier, "%s is neither a height nor a block hash", s)
	}
	return BlockIdentifier{Hash: hash, ByHash: true}, nil
}

// NormalizeTransactionID validates that txID is a 64 character hex hash and
// returns it in lowercase.
func NormalizeTransactionID(txID string) (string, error) {
	normalized, err := normalizeHash(txID)
	if err != nil {
		return "", errors.Wrapf(ErrMalformedTransactionID, "%q", txID)
	}
	return normalized, nil
}

// normalizeHash round-trips s through chainhash. chainhash accepts short
// strings by zero-padding them, so the length is checked first.
func normalizeHash(s string) (string, error) {
	if len(s) != chainhash.MaxHashStringSize {
		return "", errors.Errorf("hash %q must be %d characters long", s, chainhash.MaxHashStringSize)
	}
	hash, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return hash.String(), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
