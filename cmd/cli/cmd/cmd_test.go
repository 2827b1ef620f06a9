package cmd_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	freesound "github.com/angelospk/freesound-mcp"
	clicmd "github.com/angelospk/freesound-mcp/cmd/cli/cmd"
	"github.com/angelospk/freesound-mcp/pkg/mcpserver"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSoundService is a mock implementation of mcpserver.SoundService using testify/mock
type MockSoundService struct {
	mock.Mock
}

var _ mcpserver.SoundService = (*MockSoundService)(nil)

func (m *MockSoundService) Search(ctx context.Context, params freesound.SearchParams) ([]freesound.SoundSummary, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]freesound.SoundSummary), args.Error(1)
}

func (m *MockSoundService) DownloadPreview(ctx context.Context, params freesound.DownloadPreviewParams) (*freesound.DownloadResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*freesound.DownloadResult), args.Error(1)
}

func (m *MockSoundService) DownloadOriginal(ctx context.Context, params freesound.DownloadOriginalParams) (*freesound.DownloadResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*freesound.DownloadResult), args.Error(1)
}

// useMockClient swaps in service for the duration of the test and records the
// config the command built.
func useMockClient(t *testing.T, service *MockSoundService) *freesound.Config {
	t.Helper()
	captured := &freesound.Config{}
	original := clicmd.NewClientFunc
	clicmd.NewClientFunc = func(config freesound.Config) (mcpserver.SoundService, error) {
		*captured = config
		return service, nil
	}
	t.Cleanup(func() { clicmd.NewClientFunc = original })
	return captured
}

// setConfig overrides a viper key for the duration of the test.
func setConfig(t *testing.T, key string, value interface{}) {
	t.Helper()
	original := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, original) })
}

// resetFlags restores every flag to its default; cobra keeps flag values
// between executions of the same command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the CLI with args against a throwaway config file and
// returns stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeWithConfig(t, filepath.Join(t.TempDir(), "config.yaml"), args...)
}

func executeWithConfig(t *testing.T, configFile string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(clicmd.RootCmd)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	clicmd.RootCmd.SetOut(stdout)
	clicmd.RootCmd.SetErr(stderr)
	clicmd.RootCmd.SetArgs(append(args, "--config", configFile))
	t.Cleanup(func() {
		clicmd.RootCmd.SetOut(nil)
		clicmd.RootCmd.SetErr(nil)
		clicmd.RootCmd.SetArgs(nil)
	})

	err := clicmd.RootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireConfigValue(t *testing.T, path, key, expected string) {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	require.Equal(t, expected, v.GetString(key))
}
