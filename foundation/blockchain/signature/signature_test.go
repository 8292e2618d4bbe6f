package signature_test

import (
	"testing"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_SignRecover(t *testing.T) {
	t.Log("Given the need to sign a hash and recover the signing address.")
	{
		privateKey, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a private key: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to generate a private key.", success)

		hexHash := signature.Hash(struct {
			Name string
		}{Name: "test-data"})

		v, r, s, err := signature.Sign(hexHash, privateKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the hash: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to sign the hash.", success)

		if err := signature.VerifySignature(v, r, s); err != nil {
			t.Fatalf("\t%s\tShould have valid signature values: %v", failed, err)
		}
		t.Logf("\t%s\tShould have valid signature values.", success)

		addr, err := signature.FromAddress(hexHash, v, r, s)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to recover the address: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to recover the address.", success)

		want := crypto.PubkeyToAddress(privateKey.PublicKey).String()
		if addr != want {
			t.Errorf("\t%s\tShould recover the signer's address.", failed)
			t.Logf("\t\tgot: %s", addr)
			t.Logf("\t\texp: %s", want)
		} else {
			t.Logf("\t%s\tShould recover the signer's address.", success)
		}
	}
}

func Test_TamperedHashRecoversDifferentAddress(t *testing.T) {
	t.Log("Given the need to detect a signature applied to different data.")
	{
		privateKey, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a private key: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to generate a private key.", success)

		hexHash := signature.Hash(struct{ V int }{V: 1})

		v, r, s, err := signature.Sign(hexHash, privateKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the hash: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to sign the hash.", success)

		otherHash := signature.Hash(struct{ V int }{V: 2})

		addr, err := signature.FromAddress(otherHash, v, r, s)
		if err == nil && addr == crypto.PubkeyToAddress(privateKey.PublicKey).String() {
			t.Errorf("\t%s\tShould not recover the signer's address for different data.", failed)
		} else {
			t.Logf("\t%s\tShould not recover the signer's address for different data.", success)
		}
	}
}

func Test_HashDeterministic(t *testing.T) {
	t.Log("Given the need for a deterministic hash function.")
	{
		type payload struct {
			A string
			B int
		}

		h1 := signature.Hash(payload{A: "x", B: 1})
		h2 := signature.Hash(payload{A: "x", B: 1})
		h3 := signature.Hash(payload{A: "x", B: 2})

		if h1 != h2 {
			t.Errorf("\t%s\tShould hash the same value to the same string.", failed)
		} else {
			t.Logf("\t%s\tShould hash the same value to the same string.", success)
		}

		if h1 == h3 {
			t.Errorf("\t%s\tShould hash different values to different strings.", failed)
		} else {
			t.Logf("\t%s\tShould hash different values to different strings.", success)
		}

		if len(h1) != 66 {
			t.Errorf("\t%s\tShould produce a 0x prefixed 32 byte hash, got len %d.", failed, len(h1))
		} else {
			t.Logf("\t%s\tShould produce a 0x prefixed 32 byte hash.", success)
		}
	}
}
