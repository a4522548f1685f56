// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	argon2 "github.com/bitmark-inc/go-argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

// peerKeySaltLen/peerKeyNonceLen match bitmark-cli's own Salt/nonce
// sizes for encryptData/decryptData.
const (
	peerKeySaltLen  = 16
	peerKeyNonceLen = 24
)

// derivePeerKeySecret runs argon2i over passphrase+salt, the same
// generateKey derivation bitmark-cli's configuration/encrypt.go uses
// to turn a wallet password into a secretbox key — reused here to
// protect govd's on-disk peer identity key the same way, instead of
// leaving it as a bare hex file relying only on filesystem
// permissions.
func derivePeerKeySecret(passphrase string, salt [peerKeySaltLen]byte) (*[32]byte, error) {
	ctx := &argon2.Context{
		Iterations:  5,
		Memory:      1 << 16,
		Parallelism: 4,
		HashLen:     32,
		Mode:        argon2.ModeArgon2i,
		Version:     argon2.Version13,
	}
	hash, err := argon2.Hash(ctx, []byte(passphrase), salt[:])
	if err != nil {
		return nil, err
	}
	var secret [32]byte
	copy(secret[:], hash)
	return &secret, nil
}

// encryptPeerKey produces the "salt:ciphertext" hex form govd's
// generate-identity writes when --passphrase is given.
func encryptPeerKey(hexKey, passphrase string) (string, error) {
	var salt [peerKeySaltLen]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return "", err
	}
	secret, err := derivePeerKeySecret(passphrase, salt)
	if err != nil {
		return "", err
	}

	var nonce [peerKeyNonceLen]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}
	ciphertext := secretbox.Seal(nonce[:], []byte(hexKey), &nonce, secret)

	return fmt.Sprintf("%s:%s", hex.EncodeToString(salt[:]), hex.EncodeToString(ciphertext)), nil
}

// decryptPeerKey reverses encryptPeerKey; it returns ErrNotEncrypted
// when blob doesn't look like the "salt:ciphertext" form at all, so
// the caller can fall back to treating the file as a plain hex key.
func decryptPeerKey(blob, passphrase string) (string, error) {
	saltHex, cipherHex, err := splitPeerKeyBlob(blob)
	if err != nil {
		return "", err
	}

	saltBytes, err := hex.DecodeString(saltHex)
	if err != nil || len(saltBytes) != peerKeySaltLen {
		return "", errNotEncryptedPeerKey
	}
	var salt [peerKeySaltLen]byte
	copy(salt[:], saltBytes)

	secret, err := derivePeerKeySecret(passphrase, salt)
	if err != nil {
		return "", err
	}

	ciphertext, err := hex.DecodeString(cipherHex)
	if err != nil || len(ciphertext) <= peerKeyNonceLen {
		return "", errNotEncryptedPeerKey
	}
	var nonce [peerKeyNonceLen]byte
	copy(nonce[:], ciphertext[:peerKeyNonceLen])

	plaintext, ok := secretbox.Open(nil, ciphertext[peerKeyNonceLen:], &nonce, secret)
	if !ok {
		return "", errWrongPeerKeyPassphrase
	}
	return string(plaintext), nil
}

type peerKeyError string

func (e peerKeyError) Error() string { return string(e) }

const (
	errNotEncryptedPeerKey    = peerKeyError("peer key file is not in encrypted form")
	errWrongPeerKeyPassphrase = peerKeyError("peer key passphrase is incorrect")
)

func splitPeerKeyBlob(blob string) (salt, ciphertext string, err error) {
	for i := 0; i < len(blob); i++ {
		if blob[i] == ':' {
			return blob[:i], blob[i+1:], nil
		}
	}
	return "", "", errNotEncryptedPeerKey
}
