// Package keystore is the key provider for the ledger. It produces and
// loads the secp256k1 key pairs whose public side is the account address;
// the ledger itself only ever sees the derived account id.
package keystore

import (
	"crypto/ecdsa"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/database"
	"github.com/ethereum/go-ethereum/crypto"
)

// Generate creates a new secp256k1 private key.
func Generate() (*ecdsa.PrivateKey, error) {
	return crypto.GenerateKey()
}

// Save stores the private key at the specified path in the hex form the
// wallet tooling expects.
func Save(path string, privateKey *ecdsa.PrivateKey) error {
	return crypto.SaveECDSA(path, privateKey)
}

// Load reads the private key stored at the specified path.
func Load(path string) (*ecdsa.PrivateKey, error) {
	return crypto.LoadECDSA(path)
}

// AccountID derives the ledger address for the key pair.
func AccountID(privateKey *ecdsa.PrivateKey) database.AccountID {
	return database.PublicKeyToAccountID(privateKey.PublicKey)
}
