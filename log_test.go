package walletclient

import (
	"bytes"
	"testing"

	"github.com/DigiByte-Core/digibytejs-wallet-client/build"
	"github.com/DigiByte-Core/digibytejs-wallet-client/credcfg"
	"github.com/DigiByte-Core/digibytejs-wallet-client/credentials"
	"github.com/DigiByte-Core/digibytejs-wallet-client/keychain"
	"github.com/DigiByte-Core/digibytejs-wallet-client/mnemonic"
	"github.com/DigiByte-Core/digibytejs-wallet-client/vault"
	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

// TestSetupLoggers asserts every subsystem gets a logger at the requested
// level and that secrets stay out of the log.
func TestSetupLoggers(t *testing.T) {
	var buf bytes.Buffer

	loggers, err := SetupLoggers(&buf, "info,CRED=debug")
	require.NoError(t, err)
	t.Cleanup(DisableLoggers)

	require.Len(t, loggers, len(subsystems))
	require.Equal(t, btclog.LevelDebug,
		loggers[credentials.Subsystem].Level())
	for _, name := range []string{
		keychain.Subsystem, mnemonic.Subsystem, vault.Subsystem,
	} {
		require.Equal(t, btclog.LevelInfo, loggers[name].Level())
	}

	cfg := DefaultConfig()
	cfg.Vault = credcfg.FastVault()
	opts, err := cfg.CredentialOptions()
	require.NoError(t, err)

	c, err := credentials.CreateWithMnemonic(
		keychain.Testnet, "", mnemonic.English, 0, opts...,
	)
	require.NoError(t, err)
	require.NoError(t, c.EncryptPrivateKey([]byte("password")))

	out := buf.String()
	require.Contains(t, out, "CRED: Logging set up for "+
		build.Deployment.String()+" build")
	require.Contains(t, out, "CRED: Created credentials "+c.CopayerID())
	require.Contains(t, out, "CRED: Encrypted private key of "+c.CopayerID())
	require.NotContains(t, out, "KCHN")
	require.NotContains(t, out, c.RequestPrivKey())
	require.NotContains(t, out, c.ToObj().XPrivKeyEncrypted)
}

// TestSetupLoggersInvalid asserts bad level strings are rejected.
func TestSetupLoggersInvalid(t *testing.T) {
	var buf bytes.Buffer

	for _, level := range []string{
		"loud", "info,CRED", "info,PEER=debug", "info,CRED=loud",
		"info,CRED=debug=trace",
	} {
		_, err := SetupLoggers(&buf, level)
		require.Error(t, err, level)
	}

	require.Zero(t, buf.Len())
}
