// Package checksum computes prefixed checksums for pack files and archives.
//
// Format: "algorithm:hexvalue" (e.g., "sha256:c0ffee123...", "adler32:babe1337")
package checksum

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/adler32"
	"io"
	"os"
	"strings"
)

// Algorithm represents supported checksum algorithms
type Algorithm int

const (
	SHA256 Algorithm = iota
	SHA512
	Adler32
)

func (a Algorithm) String() string {
	switch a {
	case SHA256:
		return "sha256"
	case SHA512:
		return "sha512"
	case Adler32:
		return "adler32"
	default:
		return "unknown"
	}
}

func (a Algorithm) newHash() hash.Hash {
	switch a {
	case SHA512:
		return sha512.New()
	case Adler32:
		return adler32.New()
	default:
		return sha256.New()
	}
}

// ParseAlgorithm resolves an algorithm name. An empty name means SHA256.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sha256":
		return SHA256, nil
	case "sha512":
		return SHA512, nil
	case "adler32":
		return Adler32, nil
	default:
		return SHA256, fmt.Errorf("unknown checksum algorithm: %s", name)
	}
}

// Parse splits a prefixed checksum. Unprefixed values are guessed by length.
func Parse(s string) (Algorithm, string, error) {
	if prefix, value, ok := strings.Cut(s, ":"); ok {
		if prefix == "" {
			return SHA256, "", fmt.Errorf("missing checksum algorithm in %q", s)
		}
		algo, err := ParseAlgorithm(prefix)
		if err != nil {
			return SHA256, "", err
		}
		return algo, value, nil
	}

	switch len(s) {
	case 128:
		return SHA512, s, nil
	case 8:
		return Adler32, s, nil
	default:
		return SHA256, s, nil
	}
}

// Reader hashes everything readable from r.
func Reader(r io.Reader, algo Algorithm) (string, error) {
	h := algo.newHash()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hashing: %w", err)
	}
	return algo.String() + ":" + hex.EncodeToString(h.Sum(nil)), nil
}

// Bytes hashes data.
func Bytes(data []byte, algo Algorithm) string {
	h := algo.newHash()
	h.Write(data)
	return algo.String() + ":" + hex.EncodeToString(h.Sum(nil))
}

// File hashes the file at path.
func File(path string, algo Algorithm) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Reader(f, algo)
}

// Verify checks data against a prefixed or bare checksum.
func Verify(data []byte, expected string) (bool, error) {
	algo, want, err := Parse(expected)
	if err != nil {
		return false, err
	}
	_, got, _ := strings.Cut(Bytes(data, algo), ":")
	return strings.EqualFold(got, want), nil
}
