package version

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Заполняются при сборке:
//
//	go build -ldflags "-X github.com/vladislavdragonenkov/backoffice/internal/version.version=v1.2.0 \
//	  -X github.com/vladislavdragonenkov/backoffice/internal/version.commit=$(git rev-parse --short HEAD) \
//	  -X github.com/vladislavdragonenkov/backoffice/internal/version.date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Build описывает метаданные сборки бинарника.
type Build struct {
	Version string
	Commit  string
	Date    string
}

// Current возвращает метаданные текущей сборки.
func Current() Build {
	return Build{Version: version, Commit: commit, Date: date}
}

// Dev сообщает, что бинарник собран без -ldflags.
func (b Build) Dev() bool { return b.Version == "dev" }

func (b Build) String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", b.Version, b.Commit, b.Date)
}

// LogFields возвращает поля для стартовой записи в лог.
func (b Build) LogFields() log.Fields {
	return log.Fields{
		"version":    b.Version,
		"commit":     b.Commit,
		"build_date": b.Date,
	}
}
