// Package spool queues accepted submissions for the VTL engine. Each kind of
// submission has its own bolt bucket; records are keyed by the bucket's
// sequence so they come back in the order they were spooled.
package spool

import (
	"encoding/binary"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ansel1/merry"
	"github.com/boltdb/bolt"
	"github.com/golang/glog"
	"github.com/google/uuid"
	"golang.org/x/net/context"

	"github.com/allfs/quadstorvtl/internal/util"
	"github.com/allfs/quadstorvtl/util/proc"
)

// Submission kinds.
const (
	KindVTL       = "vtl"
	KindDrive     = "vdrive"
	KindCartridge = "vcartridge"
)

// Kinds lists the buckets created on open.
var Kinds = []string{KindVTL, KindDrive, KindCartridge}

var (
	ErrNotFound    = merry.New("spool record not found").WithHTTPCode(http.StatusNotFound)
	ErrUnknownKind = merry.New("unknown submission kind").WithHTTPCode(http.StatusBadRequest)
)

// Record is one spooled submission.
type Record struct {
	ID      uuid.UUID       `json:"id"`
	Kind    string          `json:"kind"`
	Seq     uint64          `json:"seq"`
	Created time.Time       `json:"created"`
	Body    json.RawMessage `json:"body"`
}

type Spool struct {
	*proc.Proc

	db *bolt.DB
}

// Open opens (creating if needed) the spool database at path.
func Open(path string) (*Spool, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, merry.Prependf(err, "open spool %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, kind := range Kinds {
			if _, err := tx.CreateBucketIfNotExists([]byte(kind)); err != nil {
				return merry.Prependf(err, "create bucket %s", kind)
			}
		}

		return nil
	})

	if err != nil {
		db.Close()
		return nil, err
	}

	sp := &Spool{db: db}
	sp.Proc = proc.Create(sp)

	return sp, nil
}

func (sp *Spool) ProcessName() string {
	return "spool"
}

func (sp *Spool) Handle(ctx context.Context, req proc.HandleFn) error {
	return req(ctx)
}

func bucket(tx *bolt.Tx, kind string) (*bolt.Bucket, error) {
	bkt := tx.Bucket([]byte(kind))
	if bkt == nil {
		return nil, merry.WithMessagef(ErrUnknownKind, "unknown submission kind: %s", kind)
	}

	return bkt, nil
}

// Put spools body, which must marshal to JSON, under kind.
func (sp *Spool) Put(ctx context.Context, kind string, body interface{}) (*Record, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, merry.Wrap(err)
	}

	rec := &Record{
		ID:      uuid.New(),
		Kind:    kind,
		Created: time.Now().UTC(),
		Body:    raw,
	}

	req := func(ctx context.Context) error {
		return sp.db.Update(func(tx *bolt.Tx) error {
			bkt, err := bucket(tx, kind)
			if err != nil {
				return err
			}

			seq, err := bkt.NextSequence()
			if err != nil {
				return err
			}

			rec.Seq = seq

			buf, err := json.Marshal(rec)
			if err != nil {
				return err
			}

			return bkt.Put(util.Itob(int(seq)), buf)
		})
	}

	if err := sp.Wait(ctx, req); err != nil {
		return nil, err
	}

	glog.V(2).Infof("spool: %s #%d (%s)", kind, rec.Seq, rec.ID)

	return rec, nil
}

// List returns the records of kind, oldest first.
func (sp *Spool) List(ctx context.Context, kind string) ([]*Record, error) {
	var recs []*Record

	req := func(ctx context.Context) error {
		return sp.db.View(func(tx *bolt.Tx) error {
			bkt, err := bucket(tx, kind)
			if err != nil {
				return err
			}

			c := bkt.Cursor()

			// iterate in byte-order
			for k, v := c.First(); k != nil; k, v = c.Next() {
				rec := new(Record)
				if err := json.Unmarshal(v, rec); err != nil {
					return merry.Prependf(err, "record %s/%d", kind, binary.BigEndian.Uint64(k))
				}

				recs = append(recs, rec)
			}

			return nil
		})
	}

	if err := sp.Wait(ctx, req); err != nil {
		return nil, err
	}

	return recs, nil
}

// Get returns the record of kind with sequence number seq.
func (sp *Spool) Get(ctx context.Context, kind string, seq uint64) (*Record, error) {
	var rec *Record

	req := func(ctx context.Context) error {
		return sp.db.View(func(tx *bolt.Tx) error {
			bkt, err := bucket(tx, kind)
			if err != nil {
				return err
			}

			v := bkt.Get(util.Itob(int(seq)))
			if v == nil {
				return merry.WithMessagef(ErrNotFound, "%s #%d not found", kind, seq)
			}

			rec = new(Record)
			return json.Unmarshal(v, rec)
		})
	}

	if err := sp.Wait(ctx, req); err != nil {
		return nil, err
	}

	return rec, nil
}

// Remove drops the record of kind with sequence number seq, normally once the
// engine has applied it.
func (sp *Spool) Remove(ctx context.Context, kind string, seq uint64) error {
	req := func(ctx context.Context) error {
		return sp.db.Update(func(tx *bolt.Tx) error {
			bkt, err := bucket(tx, kind)
			if err != nil {
				return err
			}

			key := util.Itob(int(seq))
			if bkt.Get(key) == nil {
				return merry.WithMessagef(ErrNotFound, "%s #%d not found", kind, seq)
			}

			return bkt.Delete(key)
		})
	}

	return sp.Wait(ctx, req)
}

// Pending counts the records of each kind.
func (sp *Spool) Pending(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)

	req := func(ctx context.Context) error {
		return sp.db.View(func(tx *bolt.Tx) error {
			for _, kind := range Kinds {
				counts[kind] = tx.Bucket([]byte(kind)).Stats().KeyN
			}

			return nil
		})
	}

	if err := sp.Wait(ctx, req); err != nil {
		return nil, err
	}

	return counts, nil
}

func (sp *Spool) Close(ctx context.Context) error {
	req := func(ctx context.Context) error {
		return sp.db.Close()
	}

	err := sp.Wait(ctx, req)
	sp.Stop()

	return err
}
