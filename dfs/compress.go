package dfs

import (
	"encoding/binary"
	"fmt"
	"math"
)

import (
	"github.com/hashicorp/golang-lru"
	"github.com/timtadh/data-structures/types"
)

const compressVersion byte = 1

// Compressed is the byte form of a Code. Two Compressed values are equal
// exactly when the codes they hold are equal.
type Compressed []byte

// DecodeError reports a Compressed value that does not hold a valid code.
type DecodeError struct {
	Reason string
	At     int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bad compressed dfs code at byte %d: %v", e.At, e.Reason)
}

func Compress(c Code) Compressed {
	buf := make([]byte, 0, 1+binary.MaxVarintLen64+len(c)*8)
	var tmp [binary.MaxVarintLen64]byte
	put := func(x int) {
		n := binary.PutUvarint(tmp[:], uint64(x))
		buf = append(buf, tmp[:n]...)
	}
	buf = append(buf, compressVersion)
	put(len(c))
	for _, s := range c {
		put(s.FromTime)
		put(s.ToTime)
		put(s.FromLabel)
		put(s.EdgeLabel)
		put(s.ToLabel)
		if s.Outgoing {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	return Compressed(buf)
}

func (z Compressed) Decode() (Code, error) {
	if len(z) == 0 {
		return nil, &DecodeError{Reason: "empty payload", At: 0}
	} else if z[0] != compressVersion {
		return nil, &DecodeError{Reason: fmt.Sprintf("unknown version %d", z[0]), At: 0}
	}
	off := 1
	get := func() (int, error) {
		x, n := binary.Uvarint(z[off:])
		if n <= 0 {
			return 0, &DecodeError{Reason: "truncated varint", At: off}
		} else if x > math.MaxInt32 {
			return 0, &DecodeError{Reason: fmt.Sprintf("value %d out of range", x), At: off}
		}
		off += n
		return int(x), nil
	}
	count, err := get()
	if err != nil {
		return nil, err
	}
	if count > len(z) {
		return nil, &DecodeError{Reason: fmt.Sprintf("step count %d exceeds payload", count), At: 1}
	}
	c := make(Code, 0, count)
	for i := 0; i < count; i++ {
		var fields [5]int
		for j := range fields {
			if fields[j], err = get(); err != nil {
				return nil, err
			}
		}
		if off >= len(z) {
			return nil, &DecodeError{Reason: "missing direction flag", At: off}
		} else if z[off] > 1 {
			return nil, &DecodeError{Reason: fmt.Sprintf("bad direction flag %d", z[off]), At: off}
		}
		c = append(c, Step{
			FromTime:  fields[0],
			ToTime:    fields[1],
			FromLabel: fields[2],
			EdgeLabel: fields[3],
			ToLabel:   fields[4],
			Outgoing:  z[off] == 1,
		})
		off++
	}
	if off != len(z) {
		return nil, &DecodeError{Reason: "trailing bytes", At: off}
	}
	if err := c.Valid(); err != nil {
		return nil, &DecodeError{Reason: err.Error(), At: off}
	}
	return c, nil
}

func (z Compressed) Equals(o types.Equatable) bool {
	b, ok := o.(Compressed)
	if !ok {
		return false
	}
	return types.ByteSlice(z).Equals(types.ByteSlice(b))
}

func (z Compressed) Less(o types.Sortable) bool {
	b, ok := o.(Compressed)
	if !ok {
		return false
	}
	return types.ByteSlice(z).Less(types.ByteSlice(b))
}

func (z Compressed) Hash() int {
	return types.ByteSlice(z).Hash()
}

// Decoder decodes compressed codes and remembers recent results. It is safe
// for concurrent use.
type Decoder struct {
	cache *lru.Cache
}

func NewDecoder(size int) (*Decoder, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Decoder{cache: cache}, nil
}

func (d *Decoder) Decode(z Compressed) (Code, error) {
	key := string(z)
	if c, has := d.cache.Get(key); has {
		return c.(Code), nil
	}
	c, err := z.Decode()
	if err != nil {
		return nil, err
	}
	d.cache.Add(key, c)
	return c, nil
}
