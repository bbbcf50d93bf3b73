package hashwires

import (
	"github.com/sirupsen/logrus"
)

// Logger is used for trace/debug-level logging at the start of
// expensive operations (Commit, Prove, Verify). It never logs secret
// material: seeds, partial seeds, or partition members.
var Logger *logrus.Logger

func init() {
	Logger = logrus.StandardLogger()
}
