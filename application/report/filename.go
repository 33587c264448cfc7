package report

import (
	"fmt"
	"time"
)

// FileBase is the stem of every management report artifact.
const FileBase = "relatorio_gerencial"

// FileName builds relatorio_gerencial_<unix_ms>.<ext>.
func FileName(at time.Time, ext string) string {
	return fmt.Sprintf("%s_%d.%s", FileBase, at.UnixMilli(), ext)
}
