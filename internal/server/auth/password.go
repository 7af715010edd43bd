package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/kampanlabs/sawari/internal/common"
)

// argon2id parameters. The PHC string records them, so they can be raised
// later without invalidating stored hashes.
const (
	argonMemoryKB    uint32 = 64 * 1024
	argonTime        uint32 = 1
	argonParallelism uint8  = 4
	argonSaltLen            = 16
	argonKeyLen      uint32 = 32
)

// HashPassword derives an argon2id hash of password and encodes it as a PHC
// string: $argon2id$v=19$m=...,t=...,p=...$salt$hash.
func HashPassword(password string) (string, error) {
	salt := common.GenerateRandByteArray(argonSaltLen)

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemoryKB, argonParallelism, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemoryKB, argonTime, argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword reports whether password matches the PHC-encoded hash.
// Comparison is constant time.
func VerifyPassword(password, encoded string) (bool, error) {
	memory, time, parallelism, salt, hash, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, parallelism, uint32(len(hash)))
	return subtle.ConstantTimeCompare(computed, hash) == 1, nil
}

func parsePHC(encoded string) (memory, time uint32, parallelism uint8, salt, hash []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		err = errors.New("invalid password hash format")
		return
	}

	var version int
	if _, serr := fmt.Sscanf(parts[2], "v=%d", &version); serr != nil || version != argon2.Version {
		err = errors.New("unsupported argon2 version")
		return
	}

	for _, pair := range strings.Split(parts[3], ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			err = errors.New("invalid password hash parameters")
			return
		}
		v, perr := strconv.ParseUint(kv[1], 10, 32)
		if perr != nil {
			err = errors.New("invalid password hash parameters")
			return
		}
		switch kv[0] {
		case "m":
			memory = uint32(v)
		case "t":
			time = uint32(v)
		case "p":
			parallelism = uint8(v)
		default:
			err = errors.New("invalid password hash parameters")
			return
		}
	}
	if memory == 0 || time == 0 || parallelism == 0 {
		err = errors.New("invalid password hash parameters")
		return
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		err = errors.New("invalid password hash salt")
		return
	}
	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		err = errors.New("invalid password hash digest")
	}
	return
}
