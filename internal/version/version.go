// Package version хранит данные сборки, проставляемые через -ldflags:
//
//	-X github.com/vladislavdragonenkov/storefront/internal/version.version=v1.2.0
package version

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info возвращает версию, коммит и дату сборки.
func Info() (v, c, d string) { return version, commit, date }

// GetVersion возвращает версию сборки.
func GetVersion() string { return version }

// String форматирует данные сборки одной строкой.
func String() string {
	return fmt.Sprintf("storefront version=%s commit=%s date=%s", version, commit, date)
}

// Fields возвращает данные сборки для структурного лога.
func Fields() log.Fields {
	return log.Fields{"version": version, "commit": commit, "build_date": date}
}
