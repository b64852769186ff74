package sale

import (
	"errors"
	"time"

	"github.com/jhoicas/caja-api/internal/domain"
)

// CommitState estado observable de una confirmación de venta.
type CommitState int

const (
	StateIdle CommitState = iota
	StateValidating
	StatePersisting
	StateApplying
	StateCommitted
	StateRolledBack // terminal; sin efectos observables
)

func (s CommitState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StatePersisting:
		return "persisting"
	case StateApplying:
		return "applying"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	}
	return "unknown"
}

// DefaultTimeout límite de una confirmación o reversión ya iniciada.
const DefaultTimeout = 15 * time.Second

type options struct {
	hook    func(CommitState)
	now     func() time.Time
	timeout time.Duration
}

// Option configura los casos de uso de venta.
type Option func(*options)

// WithStateHook registra un observador de las transiciones de estado de Commit.
func WithStateHook(fn func(CommitState)) Option {
	return func(o *options) { o.hook = fn }
}

// WithClock reemplaza el reloj (fecha de la venta).
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithTimeout fija el límite de la transacción una vez iniciada.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, timeout: DefaultTimeout}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// classified indica si err ya pertenece a la taxonomía de dominio.
func classified(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidInput,
		domain.ErrNotFound,
		domain.ErrInsufficientStock,
		domain.ErrStockUpdateFailed,
		domain.ErrPersistence,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func asPersistence(op string, err error) error {
	if err == nil || classified(err) {
		return err
	}
	return domain.Persistence(op, err)
}
