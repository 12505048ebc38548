// Package txn define el contrato de unidad de trabajo que usan los servicios.
//
// Cada módulo de dominio declara su propia vista transaccional (T) con solo
// los métodos que necesita; los adapters de storage devuelven un Manager[T]
// sobre la misma transacción física.
package txn

import "context"

// Manager ejecuta fn dentro de una transacción. Si fn devuelve error
// (o el contexto se cancela) no queda ningún cambio visible.
type Manager[T any] interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx T) error) error
}

// Func adapta una función a Manager. Útil en tests.
type Func[T any] func(ctx context.Context, fn func(ctx context.Context, tx T) error) error

func (f Func[T]) WithinTx(ctx context.Context, fn func(ctx context.Context, tx T) error) error {
	return f(ctx, fn)
}
