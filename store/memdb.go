package store

import (
	memdb "github.com/hashicorp/go-memdb"
	"github.com/on-the-ground/tableize_go/pure"
	"github.com/on-the-ground/tableize_go/shared/helper"
)

const (
	memoTable = "memo"
	memoIndex = "id"
)

var _ pure.Store[any] = MemDB[any]{}

// recordID is never empty, so nullary calls satisfy memdb's required id index.
func recordID(key pure.Key) string {
	return "memo:" + key.Fingerprint()
}

type memoRecord struct {
	ID    string
	Value any
}

// MemDB keeps the table in a go-memdb database; every store is its own write
// transaction, and storing an existing key updates it.
type MemDB[O any] struct {
	db *memdb.MemDB
}

func memoSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			memoTable: {
				Name: memoTable,
				Indexes: map[string]*memdb.IndexSchema{
					memoIndex: {
						Name:    memoIndex,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}
}

func NewMemDB[O any]() (MemDB[O], error) {
	db, err := memdb.NewMemDB(memoSchema())
	if err != nil {
		return MemDB[O]{}, err
	}
	return MemDB[O]{db: db}, nil
}

func (m MemDB[O]) Load(key pure.Key) (value O, ok bool, err error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(memoTable, memoIndex, recordID(key))
	if err != nil || raw == nil {
		return value, false, err
	}
	record, ok := helper.GetTypedValueOf2[*memoRecord](func() (any, bool) {
		return raw, true
	})
	if !ok {
		return value, false, nil
	}
	if record.Value == nil {
		return value, true, nil
	}
	value, ok = record.Value.(O)
	return value, ok, nil
}

func (m MemDB[O]) Store(key pure.Key, value O) error {
	txn := m.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(memoTable, &memoRecord{
		ID:    recordID(key),
		Value: value,
	}); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (m MemDB[O]) Len() int {
	txn := m.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(memoTable, memoIndex+"_prefix", "")
	if err != nil {
		return 0
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n
}
