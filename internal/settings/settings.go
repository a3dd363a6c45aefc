package settings

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mithrel/scalemate/internal/db"
)

const dateLayout = time.RFC3339Nano

// Defaults is a thin typed accessor over the settings store.
//
// Reads fall back to a registered default and then to the zero value of the
// requested type when the stored value is absent or malformed. Writes are
// fire-and-forget: a failing store is logged and otherwise ignored.
type Defaults struct {
	ctx        context.Context
	store      db.Store
	log        *zap.Logger
	registered map[Name]string
}

// New returns accessors bound to store. ctx is used for every store call.
func New(ctx context.Context, store db.Store, log *zap.Logger) *Defaults {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Defaults{ctx: ctx, store: store, log: log, registered: map[Name]string{}}
}

// Register installs fallback values used when a key has never been written.
func (d *Defaults) Register(values map[Name]string) {
	for k, v := range values {
		d.registered[k] = v
	}
}

// Lookup returns the raw stored value and whether it was present.
func (d *Defaults) Lookup(n Name) (string, bool) {
	v, err := d.store.Get(d.ctx, string(n))
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			d.log.Warn("settings read failed", zap.String("name", string(n)), zap.Error(err))
		}
		if reg, ok := d.registered[n]; ok {
			return reg, true
		}
		return "", false
	}
	return v, true
}

func (d *Defaults) ReadString(n Name) string {
	v, _ := d.Lookup(n)
	return v
}

func (d *Defaults) ReadInt(n Name) int {
	v, ok := d.Lookup(n)
	if !ok {
		return 0
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return d.registeredInt(n)
	}
	return i
}

func (d *Defaults) ReadBool(n Name) bool {
	v, ok := d.Lookup(n)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	return b
}

// ReadDate returns the stored instant or the zero time.
func (d *Defaults) ReadDate(n Name) time.Time {
	v, ok := d.Lookup(n)
	if !ok || v == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ReadEnum returns the stored tag when it is one of cases, otherwise the
// registered default, otherwise cases[0].
func ReadEnum[T ~string](d *Defaults, n Name, cases []T) T {
	var zero T
	if v, ok := d.Lookup(n); ok {
		for _, c := range cases {
			if string(c) == v {
				return c
			}
		}
	}
	if reg, ok := d.registered[n]; ok {
		for _, c := range cases {
			if string(c) == reg {
				return c
			}
		}
	}
	if len(cases) > 0 {
		return cases[0]
	}
	return zero
}

func (d *Defaults) SetString(n Name, v string) { d.write(n, v) }

func (d *Defaults) SetInt(n Name, v int) { d.write(n, strconv.Itoa(v)) }

func (d *Defaults) SetBool(n Name, v bool) { d.write(n, strconv.FormatBool(v)) }

func (d *Defaults) SetDate(n Name, t time.Time) {
	if t.IsZero() {
		d.write(n, "")
		return
	}
	d.write(n, t.UTC().Format(dateLayout))
}

// SetMany writes several values together.
func (d *Defaults) SetMany(values map[Name]string) {
	raw := make(map[string]string, len(values))
	for k, v := range values {
		raw[string(k)] = v
	}
	if err := d.store.SetMany(d.ctx, raw); err != nil {
		d.log.Warn("settings write failed", zap.Int("count", len(values)), zap.Error(err))
	}
}

// Delete removes a stored value so reads fall back to the registered default.
func (d *Defaults) Delete(n Name) {
	if err := d.store.Delete(d.ctx, string(n)); err != nil {
		d.log.Warn("settings delete failed", zap.String("name", string(n)), zap.Error(err))
	}
}

// Record appends to the usage event log; failures are logged only.
func (d *Defaults) Record(typ db.EventType, name, detail string, at time.Time) {
	ev := db.Event{Time: at, Type: typ, Name: name, Detail: detail}
	if err := d.store.AppendEvent(d.ctx, ev); err != nil {
		d.log.Warn("usage event write failed", zap.String("type", string(typ)), zap.String("name", name), zap.Error(err))
	}
}

func (d *Defaults) write(n Name, v string) {
	if err := d.store.Set(d.ctx, string(n), v); err != nil {
		d.log.Warn("settings write failed", zap.String("name", string(n)), zap.Error(err))
	}
}

func (d *Defaults) registeredInt(n Name) int {
	if reg, ok := d.registered[n]; ok {
		if i, err := strconv.Atoi(reg); err == nil {
			return i
		}
	}
	return 0
}
