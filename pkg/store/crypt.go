package store

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

// Sealed files start with this magic, followed by the argon2 salt, the
// secretbox nonce and the box itself.
var sealMagic = []byte("SHIKI-SEALED-1\n")

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var (
	errNoPassphrase = errors.New("credential file is encrypted but no passphrase is configured")
	errBadSeal      = errors.New("wrong passphrase or corrupt credential file")
)

func isSealed(data []byte) bool {
	return bytes.HasPrefix(data, sealMagic)
}

func deriveKey(passphrase, salt []byte) *[keySize]byte {
	var key [keySize]byte
	copy(key[:], argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, keySize))
	return &key
}

func seal(plain, passphrase []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(sealMagic)+saltSize+nonceSize+len(plain)+secretbox.Overhead)
	out = append(out, sealMagic...)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plain, &nonce, deriveKey(passphrase, salt)), nil
}

func unseal(data, passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, errNoPassphrase
	}
	data = data[len(sealMagic):]
	if len(data) < saltSize+nonceSize+secretbox.Overhead {
		return nil, errBadSeal
	}
	salt := data[:saltSize]
	var nonce [nonceSize]byte
	copy(nonce[:], data[saltSize:saltSize+nonceSize])

	plain, ok := secretbox.Open(nil, data[saltSize+nonceSize:], &nonce, deriveKey(passphrase, salt))
	if !ok {
		return nil, errBadSeal
	}
	return plain, nil
}
