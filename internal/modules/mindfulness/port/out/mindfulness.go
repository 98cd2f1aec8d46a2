package out

import (
	"context"

	"healthquest/internal/modules/mindfulness/domain"
)

// SessionArchive records a finished session. Archiving is write-behind;
// failures must not undo the completion.
type SessionArchive interface {
	Archive(ctx context.Context, session domain.Session) error
}
