package stdout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"mungebits/sink"
)

/* ────────── public config ────────── */
type Config struct {
	PrintCounter bool      `koanf:"print_counter"` // prepend seq#
	Writer       io.Writer `koanf:"-"`             // defaults to os.Stdout
}

/* ────────── driver ────────── */
type driver struct {
	cfg Config

	mu  sync.Mutex // guards w+seq
	w   io.Writer
	seq uint64
}

/* ────────── sink.Adapter ────────── */
func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("stdout-sink: expected Config, got %T", raw)
	}
	d.cfg = c
	d.w = c.Writer
	if d.w == nil {
		d.w = os.Stdout
	}
	return nil
}

// Push writes one JSON line per row.
func (d *driver) Push(b sink.Batch) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, rec := range b.Frame.Records() {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("stdout-sink: %w", err)
		}
		d.seq++
		if d.cfg.PrintCounter {
			_, err = fmt.Fprintf(d.w, "[sink %06d] %s\n", d.seq, line)
		} else {
			_, err = fmt.Fprintf(d.w, "%s\n", line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *driver) Close() error { return nil }

/* ────────── auto-register ────────── */
func init() {
	sink.Register("stdout", func() sink.Adapter { return &driver{} })
}
