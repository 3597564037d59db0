// Copyright (c) 2025 The TECH HY developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket provides a logical bucket for a kv store by key prefixing.
type Bucket string

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &bucketGetter{b, src}
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &bucketPutter{b, src}
}

// NewStore creates a bucket store from the source store.
func (b Bucket) NewStore(src GetPutter) GetPutter {
	return &struct {
		Getter
		Putter
	}{
		b.NewGetter(src),
		b.NewPutter(src),
	}
}

func (b Bucket) makeKey(key []byte) []byte {
	return append(append(make([]byte, 0, len(b)+len(key)), b...), key...)
}

type bucketGetter struct {
	b   Bucket
	src Getter
}

func (g *bucketGetter) Get(key []byte) ([]byte, error) {
	return g.src.Get(g.b.makeKey(key))
}

func (g *bucketGetter) Has(key []byte) (bool, error) {
	return g.src.Has(g.b.makeKey(key))
}

func (g *bucketGetter) IsNotFound(err error) bool {
	return g.src.IsNotFound(err)
}

type bucketPutter struct {
	b   Bucket
	src Putter
}

func (p *bucketPutter) Put(key, value []byte) error {
	return p.src.Put(p.b.makeKey(key), value)
}

func (p *bucketPutter) Delete(key []byte) error {
	return p.src.Delete(p.b.makeKey(key))
}

func (p *bucketPutter) NewBatch() Batch {
	return &bucketBatch{p.b, p.src.NewBatch()}
}

type bucketBatch struct {
	b     Bucket
	batch Batch
}

func (bb *bucketBatch) Put(key, value []byte) error {
	return bb.batch.Put(bb.b.makeKey(key), value)
}

func (bb *bucketBatch) Delete(key []byte) error {
	return bb.batch.Delete(bb.b.makeKey(key))
}

func (bb *bucketBatch) NewBatch() Batch { return bb.batch.NewBatch() }
func (bb *bucketBatch) Len() int        { return bb.batch.Len() }
func (bb *bucketBatch) Write() error    { return bb.batch.Write() }
