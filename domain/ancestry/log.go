package ancestry

import (
	"github.com/kaspanet/txancestry/infrastructure/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.ANCS)
