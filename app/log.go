package app

import (
	"github.com/kaspanet/txancestry/infrastructure/config"
	"github.com/kaspanet/txancestry/infrastructure/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.TXAN)

// initLog attaches the configured log destinations to the backend and starts
// it. With neither log files nor stdout the backend is left stopped and every
// entry is dropped.
func initLog(backend *logger.Backend, cfg *config.Config) error {
	if cfg.LogStdout {
		err := backend.AddStdout(logger.LevelTrace)
		if err != nil {
			return err
		}
	}
	if !cfg.NoLogFiles {
		err := backend.AddLogFile(cfg.LogFile(), logger.LevelTrace)
		if err != nil {
			return err
		}
		err = backend.AddLogFile(cfg.ErrLogFile(), logger.LevelWarn)
		if err != nil {
			return err
		}
	}
	if cfg.NoLogFiles && !cfg.LogStdout {
		return nil
	}
	return backend.Run()
}
