package ubloxtec

import "github.com/sirupsen/logrus"

// logger is the package-level sink for decode-path diagnostics (dropped
// measurements, rejected frames). It defaults to the standard logger and
// can be replaced by an embedding application through SetLogger;
// cmd/ublox-recorder does not replace it.
var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the package-level logger used for decode warnings.
func SetLogger(l logrus.FieldLogger) {
	logger = l
}
