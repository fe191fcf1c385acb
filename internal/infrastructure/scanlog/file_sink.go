package scanlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/easyrewardph/bayani/internal/application/scanning"
	"github.com/easyrewardph/bayani/pkg/logger"
)

var _ scanning.AttemptSink = (*FileSink)(nil)

// FileSink escribe cada intento de escaneo en un archivo plano diario
// (scanlog/YYYY-MM-DD.log), el formato que bodega ya revisa a mano. Una falla
// de escritura se loguea y se descarta: el sink jamás falla un escaneo.
type FileSink struct {
	dir string
	log *logger.Logger
	mu  sync.Mutex
}

// NewFileSink construye el sink. Dir vacío devuelve nil (sink deshabilitado).
func NewFileSink(dir string, log *logger.Logger) *FileSink {
	if dir == "" {
		return nil
	}
	return &FileSink{dir: dir, log: log}
}

// Record agrega una línea al archivo del día, creando el directorio si no existe.
func (s *FileSink) Record(barcode, status, message string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.warn(err)
		return
	}
	now := time.Now()
	path := filepath.Join(s.dir, now.Format("2006-01-02")+".log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.warn(err)
		return
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] Barcode: %s | Status: %s | Message: %s\n",
		now.Format("2006-01-02 15:04:05"), barcode, status, message)
	if _, err := f.WriteString(line); err != nil {
		s.warn(err)
	}
}

func (s *FileSink) warn(err error) {
	if s.log != nil {
		s.log.Warn().Err(err).Msg("scanlog: no se pudo escribir el archivo diario")
	}
}
