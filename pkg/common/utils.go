package common

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateBatchID returns a collision-resistant batch identifier. The
// millisecond timestamp keeps identifiers roughly sortable by submission
// time; the uuid fragment guards against same-millisecond submissions.
func GenerateBatchID() string {
	return fmt.Sprintf("BATCH-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
