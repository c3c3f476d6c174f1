package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gqlauth/internal/logging"
	"github.com/pressly/goose/v3"
)

// gooseLogger forwards goose output to the application logger so migration
// lines land in the same structured stream.
type gooseLogger struct {
	logger logging.Logger
}

var _ goose.Logger = gooseLogger{}

func (g gooseLogger) Printf(format string, v ...any) {
	g.logger.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf is only reached from goose's legacy helpers; RunMigrations reports
// failures through its returned error.
func (g gooseLogger) Fatalf(format string, v ...any) {
	g.logger.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}
