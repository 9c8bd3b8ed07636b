package esplora

import (
	"github.com/kaspanet/txancestry/infrastructure/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.ESPL)
