package encore

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"hash"
	"strings"
)

// Subresource-integrity algorithms.
const (
	AlgorithmSHA256 = "sha256"
	AlgorithmSHA384 = "sha384"
	AlgorithmSHA512 = "sha512"

	// DefaultIntegrityAlgorithm matches Encore's default.
	DefaultIntegrityAlgorithm = AlgorithmSHA384
)

func newHash(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case AlgorithmSHA256:
		return sha256.New(), nil
	case AlgorithmSHA384:
		return sha512.New384(), nil
	case AlgorithmSHA512:
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: sha256, sha384, sha512)", ErrUnsupportedAlgorithm, algorithm)
	}
}

// ComputeIntegrity returns the subresource-integrity value of data,
// formatted as "<algorithm>-<base64 digest>". An empty algorithm selects
// DefaultIntegrityAlgorithm.
func ComputeIntegrity(algorithm string, data []byte) (string, error) {
	if algorithm == "" {
		algorithm = DefaultIntegrityAlgorithm
	}

	h, err := newHash(algorithm)
	if err != nil {
		return "", err
	}
	h.Write(data)

	return strings.ToLower(algorithm) + "-" + base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}

// VerifyIntegrity checks data against an integrity value such as the ones
// in entrypoints.json. Only the first hash of a space-separated list is
// considered, which is what Encore writes.
func VerifyIntegrity(expected string, data []byte) error {
	value, _, _ := strings.Cut(strings.TrimSpace(expected), " ")
	algorithm, digest, ok := strings.Cut(value, "-")
	if !ok || digest == "" {
		return fmt.Errorf("%w: %q", ErrInvalidIntegrity, expected)
	}

	actual, err := ComputeIntegrity(algorithm, data)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(actual), []byte(strings.ToLower(algorithm)+"-"+digest)) != 1 {
		return fmt.Errorf("%w: want %s, got %s", ErrIntegrityMismatch, value, actual)
	}
	return nil
}
