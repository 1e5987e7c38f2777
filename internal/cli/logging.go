package cli

import (
	"io"

	"github.com/go-logr/logr"
	"go.uber.org/zap/zapcore"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/bayleafwalker/operator-upgradepath/internal/config"
)

// setupLogger installs the process wide logger for level and returns it.
func setupLogger(level config.Level, w io.Writer) logr.Logger {
	opts := zap.Options{
		Development: level == config.LevelTrace,
		DestWriter:  w,
		Level:       zapcore.Level(-level.Verbosity()),
	}
	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))
	return ctrl.Log.WithName("upgradepath")
}
