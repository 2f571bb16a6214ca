package fixture

import (
	"context"

	"github.com/jryan2014/car-audio-events/internal/ports"
)

// UnitOfWork is a passthrough: the fixture store persists nothing, so
// there is nothing to commit or roll back.
type UnitOfWork struct{}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{}
}

func (u *UnitOfWork) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
