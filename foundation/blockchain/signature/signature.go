// Package signature provides the hashing and secp256k1 signing support
// the ledger needs.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros. It is used as the merkle root
// of a block with no transactions.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// coinID is an arbitrary number added to the recovery id when signing.
// It marks signatures as belonging to this ledger, the same way Ethereum
// and Bitcoin use the value of 27.
const coinID = 31

// =============================================================================

// Hash returns a unique string for the value.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// Sign uses the specified private key to sign the hex-encoded hash.
func Sign(hexHash string, privateKey *ecdsa.PrivateKey) (v, r, s *big.Int, err error) {

	// Prepare the hash for signing.
	data, err := stamp(hexHash)
	if err != nil {
		return nil, nil, nil, err
	}

	// Sign the hash with the private key to produce a signature.
	sig, err := crypto.Sign(data, privateKey)
	if err != nil {
		return nil, nil, nil, err
	}

	// Extract the public key from the hash and the signature.
	publicKey, err := crypto.SigToPub(data, sig)
	if err != nil {
		return nil, nil, nil, err
	}

	// Check the public key extracted from the hash and signature.
	rs := sig[:crypto.RecoveryIDOffset]
	if !crypto.VerifySignature(crypto.FromECDSAPub(publicKey), data, rs) {
		return nil, nil, nil, errors.New("invalid signature")
	}

	// Convert the 65 byte signature into the [R|S|V] format.
	v, r, s = toSignatureValues(sig)

	return v, r, s, nil
}

// VerifySignature verifies the signature values conform to our standards.
func VerifySignature(v, r, s *big.Int) error {

	// Check the recovery id is either 0 or 1.
	uintV := v.Uint64() - coinID
	if uintV != 0 && uintV != 1 {
		return errors.New("invalid recovery id")
	}

	// Check the signature values are valid.
	if !crypto.ValidateSignatureValues(byte(uintV), r, s, false) {
		return errors.New("invalid signature values")
	}

	return nil
}

// FromAddress extracts the address for the account that signed the hash.
func FromAddress(hexHash string, v, r, s *big.Int) (string, error) {

	// Prepare the hash for public key extraction.
	data, err := stamp(hexHash)
	if err != nil {
		return "", err
	}

	// Convert the [R|S|V] format into the original 65 bytes.
	sig := ToSignatureBytes(v, r, s)

	// Capture the public key associated with this hash and signature.
	publicKey, err := crypto.SigToPub(data, sig)
	if err != nil {
		return "", err
	}

	// Extract the account address from the public key.
	return crypto.PubkeyToAddress(*publicKey).String(), nil
}

// SignatureString returns the signature as a string, keeping the coinID
// in the recovery byte.
func SignatureString(v, r, s *big.Int) string {
	sig := ToSignatureBytes(v, r, s)
	sig[64] = byte(v.Uint64())

	return hexutil.Encode(sig)
}

// =============================================================================

// stamp returns a hash of 32 bytes that represents the hex-encoded hash
// with the ledger stamp embedded into the final hash.
func stamp(hexHash string) ([]byte, error) {
	hash, err := hexutil.Decode(hexHash)
	if err != nil {
		return nil, err
	}

	// This stamp is used so signatures produced when signing data are
	// always unique to this ledger.
	stamp := []byte("\x19AIBTC Signed Message:\n32")

	// Hash the stamp and the hash together in a final 32 byte array
	// that represents the data.
	data := crypto.Keccak256(stamp, hash)

	return data, nil
}

// toSignatureValues converts the signature into the r, s, v values.
func toSignatureValues(sig []byte) (v, r, s *big.Int) {
	r = new(big.Int).SetBytes(sig[:32])
	s = new(big.Int).SetBytes(sig[32:64])
	v = new(big.Int).SetBytes([]byte{sig[64] + coinID})

	return v, r, s
}

// ToSignatureBytes converts the r, s, v values into a slice of bytes
// with the removal of the coinID.
func ToSignatureBytes(v, r, s *big.Int) []byte {
	sig := make([]byte, crypto.SignatureLength)

	rBytes := r.Bytes()
	copy(sig[32-len(rBytes):], rBytes)

	sBytes := s.Bytes()
	copy(sig[64-len(sBytes):], sBytes)

	sig[64] = byte(v.Uint64() - coinID)

	return sig
}
