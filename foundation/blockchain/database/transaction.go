package database

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Set of transaction related errors.
var (
	ErrUnauthorizedSigner = errors.New("signing key does not belong to the from address")
	ErrMissingSignature   = errors.New("transaction has no signature")
	ErrInvalidSignature   = errors.New("transaction signature is invalid")
)

// =============================================================================

// Tx is the transactional information between two parties. A transaction
// with an empty FromID is a system-minted credit (mining reward or genesis)
// and carries no signature.
type Tx struct {
	FromID    AccountID `json:"from,omitempty"`
	ToID      AccountID `json:"to"`
	Value     uint      `json:"value"`
	TimeStamp uint64    `json:"timestamp"`
	V         *big.Int  `json:"v,omitempty"`
	R         *big.Int  `json:"r,omitempty"`
	S         *big.Int  `json:"s,omitempty"`
}

// NewTx constructs a new unsigned transaction between two accounts.
func NewTx(fromID AccountID, toID AccountID, value uint) (Tx, error) {
	if !fromID.IsAccountID() {
		return Tx{}, fmt.Errorf("from account is not properly formatted")
	}
	if !toID.IsAccountID() {
		return Tx{}, fmt.Errorf("to account is not properly formatted")
	}

	tx := Tx{
		FromID:    fromID,
		ToID:      toID,
		Value:     value,
		TimeStamp: uint64(time.Now().UTC().Unix()),
	}

	return tx, nil
}

// NewRewardTx constructs a system-minted transaction crediting the
// specified account. Reward transactions have no sender and no signature.
func NewRewardTx(toID AccountID, value uint) Tx {
	return Tx{
		ToID:      toID,
		Value:     value,
		TimeStamp: uint64(time.Now().UTC().Unix()),
	}
}

// digest computes the canonical hash over the economic fields of the
// transaction. The hash is always recomputed, never cached, so a mutated
// transaction can't present a stale hash.
func (tx Tx) digest() [32]byte {
	data := fmt.Sprintf("%s%s%d%d", tx.FromID, tx.ToID, tx.Value, tx.TimeStamp)
	return sha256.Sum256([]byte(data))
}

// Hash implements the merkle Hashable interface for providing a hash of
// the transaction.
func (tx Tx) Hash() ([]byte, error) {
	digest := tx.digest()
	return digest[:], nil
}

// HashHex returns the canonical transaction hash as a hex encoded string.
func (tx Tx) HashHex() string {
	digest := tx.digest()
	return hexutil.Encode(digest[:])
}

// Equals implements the merkle Hashable interface for providing an
// equality check between two transactions.
func (tx Tx) Equals(otherTx Tx) bool {
	return tx.digest() == otherTx.digest()
}

// Sign uses the specified private key to sign the transaction. The key
// must belong to the from address or the signing is refused.
func (tx Tx) Sign(privateKey *ecdsa.PrivateKey) (Tx, error) {
	if PublicKeyToAccountID(privateKey.PublicKey) != tx.FromID {
		return Tx{}, ErrUnauthorizedSigner
	}

	v, r, s, err := signature.Sign(tx.HashHex(), privateKey)
	if err != nil {
		return Tx{}, err
	}

	tx.V = v
	tx.R = r
	tx.S = s

	return tx, nil
}

// Verify checks the transaction signature recovers to the from address.
// System-minted transactions carry no signature and always verify. Any
// failure is reported as an error value, never a panic.
func (tx Tx) Verify() error {
	if tx.FromID == "" {
		return nil
	}

	if tx.V == nil || tx.R == nil || tx.S == nil {
		return ErrMissingSignature
	}

	if err := signature.VerifySignature(tx.V, tx.R, tx.S); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	address, err := signature.FromAddress(tx.HashHex(), tx.V, tx.R, tx.S)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	if AccountID(address) != tx.FromID {
		return fmt.Errorf("%w: signature does not recover to the from address", ErrInvalidSignature)
	}

	return nil
}

// SignatureString returns the signature as a string.
func (tx Tx) SignatureString() string {
	if tx.V == nil || tx.R == nil || tx.S == nil {
		return ""
	}

	return signature.SignatureString(tx.V, tx.R, tx.S)
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	from := string(tx.FromID)
	if from == "" {
		from = "reward"
	}

	return fmt.Sprintf("%s:%s:%d", from, tx.ToID, tx.Value)
}
