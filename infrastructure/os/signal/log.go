package signal

import (
	"github.com/kaspanet/txancestry/infrastructure/logger"
	"github.com/kaspanet/txancestry/util/panics"
)

var log, _ = logger.Get(logger.SubsystemTags.TXAN)
var spawn = panics.GoroutineWrapperFunc(log)
