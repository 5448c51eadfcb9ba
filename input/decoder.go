package input

import (
	"fmt"
	"io"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/cline/status"
)

// Decoder turns raw terminal input into keys.
// The reader must return (0, nil) when its read timeout elapses with no input.
type Decoder struct {
	r    io.Reader
	m    Machine
	wake func() bool
	buf  [1]byte

	keys    *atomic.Int64
	dropped *atomic.Int64
}

// NewDecoder creates a decoder reading one byte at a time from r
func NewDecoder(r io.Reader) *Decoder {
	d := &Decoder{r: r}
	d.SetStatus(status.NewRegistry())
	return d
}

// SetStatus publishes key counters into reg
func (d *Decoder) SetStatus(reg *status.Registry) {
	d.keys = reg.Ints.Get("input.keys")
	d.dropped = reg.Ints.Get("input.sequences_dropped")
}

// SetWake installs a predicate polled on idle timeouts between keys.
// When it reports true ReadKey returns KeyNone.
func (d *Decoder) SetWake(fn func() bool) {
	d.wake = fn
}

// ReadKey blocks until one key is decoded.
// A read error discards any partial sequence and is returned wrapped.
func (d *Decoder) ReadKey() (Key, error) {
	for {
		n, err := d.r.Read(d.buf[:])
		if err != nil {
			d.m.Reset()
			return KeyNone, fmt.Errorf("read key: %w", err)
		}

		var t Transition
		if n == 0 {
			if d.m.State() == StateStart {
				if d.wake != nil && d.wake() {
					return KeyNone, nil
				}
				continue
			}
			t = d.m.Timeout()
		} else {
			t = d.m.Feed(d.buf[0])
		}

		switch t.Action {
		case ActionEmit:
			d.keys.Add(1)
			log.Printf("input: key %v", t.Key)
			return t.Key, nil
		case ActionDrop:
			d.dropped.Add(1)
			log.Printf("input: dropped unrecognized escape sequence")
		}
	}
}
