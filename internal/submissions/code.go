package submissions

import (
	"fmt"
	"time"
)

// GenerateKode builds the human-facing submission code, e.g.
// PJN-20250828-143015. Uniqueness comes from the second-resolution timestamp
// plus the unique index on kode_pengajuan.
func GenerateKode(now time.Time) string {
	return fmt.Sprintf("PJN-%s", now.Format("20060102-150405"))
}
