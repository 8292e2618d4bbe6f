// Package disk implements the storage Store with one JSON document per
// record on disk.
package disk

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/storage"
)

// Disk represents the store implementation for reading and writing ledger
// records in their own files on disk.
type Disk struct {
	blocksPath string
	transPath  string
	merklePath string
}

// New constructs a Disk store rooted at the specified path.
func New(dbPath string) (*Disk, error) {
	d := Disk{
		blocksPath: filepath.Join(dbPath, "blocks"),
		transPath:  filepath.Join(dbPath, "transactions"),
		merklePath: filepath.Join(dbPath, "merkle"),
	}

	for _, path := range []string{d.blocksPath, d.transPath, d.merklePath} {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, err
		}
	}

	return &d, nil
}

// Close in this implementation has nothing to do since each record is
// written to its own file and then immediately closed.
func (d *Disk) Close() error {
	return nil
}

// SaveBlock stores the block row in a file named by its hash.
func (d *Disk) SaveBlock(block storage.BlockRow) error {
	return write(filepath.Join(d.blocksPath, block.Hash+".json"), block)
}

// LoadBlock retrieves the block row for the specified hash.
func (d *Disk) LoadBlock(hash string) (storage.BlockRow, error) {
	var block storage.BlockRow
	if err := read(filepath.Join(d.blocksPath, hash+".json"), &block); err != nil {
		return storage.BlockRow{}, err
	}

	return block, nil
}

// SaveTransaction stores the transaction row in a file named by its hash.
func (d *Disk) SaveTransaction(tx storage.TxRow) error {
	return write(filepath.Join(d.transPath, tx.Hash+".json"), tx)
}

// LoadTransaction retrieves the transaction row for the specified hash.
func (d *Disk) LoadTransaction(hash string) (storage.TxRow, error) {
	var tx storage.TxRow
	if err := read(filepath.Join(d.transPath, hash+".json"), &tx); err != nil {
		return storage.TxRow{}, err
	}

	return tx, nil
}

// SaveMerkleNodes stores the merkle node rows of a block in a file named
// by the block hash.
func (d *Disk) SaveMerkleNodes(blockHash string, nodes []storage.MerkleNodeRow) error {
	return write(filepath.Join(d.merklePath, blockHash+".json"), nodes)
}

// =============================================================================

// write marshals the value in a human readable format and stores it at
// the specified path.
func write(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}

	return nil
}

// read decodes the record at the specified path into the value.
func read(path string, value any) error {
	f, err := os.OpenFile(path, os.O_RDONLY, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotFound
		}
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(value)
}
