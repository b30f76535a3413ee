package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/mpcexport/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing, loading the
// problem with the loader its path selects. Logs go into the returned buffer.
func SetupAppTest(t *testing.T, cfg Config) (*App, *testutil.SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	appConfig, err := NewConfig(cfg)
	if err != nil {
		t.Fatalf("invalid test configuration: %v", err)
	}
	loader, err := SelectLoader(appConfig.ProblemPath)
	if err != nil {
		t.Fatalf("no loader for %s: %v", appConfig.ProblemPath, err)
	}

	logBuffer := &testutil.SafeBuffer{}
	testApp := NewApp(logBuffer, appConfig, loader)

	t.Cleanup(func() {
		if os.Getenv("MPCX_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	return testApp, logBuffer
}
