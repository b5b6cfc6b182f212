package event

import (
	"fmt"

	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/crud"
)

var errFinishBeforeStart = fmt.Errorf("%w: finishAt is before startAt", crud.ErrInvalidPayload)
