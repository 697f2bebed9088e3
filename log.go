package walletclient

import (
	"io"

	"github.com/DigiByte-Core/digibytejs-wallet-client/build"
	"github.com/DigiByte-Core/digibytejs-wallet-client/credentials"
	"github.com/DigiByte-Core/digibytejs-wallet-client/keychain"
	"github.com/DigiByte-Core/digibytejs-wallet-client/mnemonic"
	"github.com/DigiByte-Core/digibytejs-wallet-client/vault"
	"github.com/btcsuite/btclog"
)

// subsystem pairs the logging code of a package with the function that
// installs its logger.
type subsystem struct {
	name      string
	useLogger func(btclog.Logger)
}

// subsystems lists every package that logs.
var subsystems = []subsystem{
	{keychain.Subsystem, keychain.UseLogger},
	{mnemonic.Subsystem, mnemonic.UseLogger},
	{vault.Subsystem, vault.UseLogger},
	{credentials.Subsystem, credentials.UseLogger},
}

// newLogManager creates one logger per subsystem on a backend writing to w
// and applies the debug level string to them. Nothing is installed yet.
func newLogManager(w io.Writer, level string) (*build.SubLoggerManager,
	map[string]btclog.Logger, error) {

	mgr := build.NewSubLoggerManager(w)

	loggers := make(map[string]btclog.Logger, len(subsystems))
	for _, s := range subsystems {
		loggers[s.name] = build.NewSubLogger(s.name, mgr.GenSubLogger)
	}

	if err := build.ParseAndSetDebugLevels(level, mgr); err != nil {
		return nil, nil, err
	}

	return mgr, loggers, nil
}

// SetupLoggers routes the logs of every package to w. The level is either a
// single level for all subsystems, such as "debug", or a level followed by
// subsystem overrides, such as "info,CRED=trace". On error no logger is
// changed.
func SetupLoggers(w io.Writer, level string) (build.SubLoggers, error) {
	mgr, loggers, err := newLogManager(w, level)
	if err != nil {
		return nil, err
	}

	for _, s := range subsystems {
		s.useLogger(loggers[s.name])
	}

	loggers[credentials.Subsystem].Debugf("Logging set up for %v build "+
		"with %v log writer, level %q", build.Deployment,
		build.LoggingType, level)

	return mgr.SubLoggers(), nil
}

// DisableLoggers silences every package again.
func DisableLoggers() {
	for _, s := range subsystems {
		s.useLogger(btclog.Disabled)
	}
}
