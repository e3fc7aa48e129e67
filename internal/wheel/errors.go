package wheel

import "errors"

var (
	ErrInvalidSlot       = errors.New("slot outside wheel domain")
	ErrInvalidCommission = errors.New("commission percent outside [0, 100]")
	ErrCapacityExceeded  = errors.New("prize slots exceed total slots")
	ErrInvalidConfig     = errors.New("invalid wheel configuration")
)
