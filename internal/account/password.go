package account

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	hashMemory     = 64 * 1024
	hashIterations = 3
	hashThreads    = 1
	saltLength     = 16
	keyLength      = 32
)

// passwordHash is a parsed argon2id PHC string.
type passwordHash struct {
	m    uint32
	t    uint32
	p    uint8
	salt []byte
	sum  []byte
}

// HashPassword derives an argon2id hash of password encoded as a PHC string.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	sum := argon2.IDKey([]byte(password), salt, hashIterations, hashMemory, hashThreads, keyLength)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		hashMemory,
		hashIterations,
		hashThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// VerifyPassword reports whether password matches the encoded hash. A
// malformed hash never matches.
func VerifyPassword(encoded, password string) bool {
	h, err := parseHash(encoded)
	if err != nil {
		return false
	}
	sum := argon2.IDKey([]byte(password), h.salt, h.t, h.m, h.p, uint32(len(h.sum)))
	return subtle.ConstantTimeCompare(sum, h.sum) == 1
}

func parseHash(phc string) (*passwordHash, error) {
	parts := strings.Split(phc, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, errors.New("invalid argon2id hash format")
	}
	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return nil, fmt.Errorf("unsupported argon2id version: %s", parts[2])
	}

	var h passwordHash
	for _, param := range strings.Split(parts[3], ",") {
		key, val, ok := strings.Cut(param, "=")
		if !ok {
			return nil, errors.New("invalid argon2id params")
		}
		switch key {
		case "m":
			n, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return nil, errors.New("invalid argon2id memory")
			}
			h.m = uint32(n)
		case "t":
			n, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return nil, errors.New("invalid argon2id iterations")
			}
			h.t = uint32(n)
		case "p":
			n, err := strconv.ParseUint(val, 10, 8)
			if err != nil {
				return nil, errors.New("invalid argon2id parallelism")
			}
			h.p = uint8(n)
		default:
			return nil, errors.New("invalid argon2id params")
		}
	}
	if h.m == 0 || h.t == 0 || h.p == 0 {
		return nil, errors.New("invalid argon2id params")
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, errors.New("invalid argon2id salt")
	}
	if h.sum, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, errors.New("invalid argon2id hash")
	}
	if len(h.sum) == 0 {
		return nil, errors.New("invalid argon2id hash")
	}
	return &h, nil
}
