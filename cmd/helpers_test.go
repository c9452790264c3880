package cmd

import (
	"bytes"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
)

// objectServer is a path-style stand-in for a public bucket that records the
// order of requested paths.
type objectServer struct {
	*httptest.Server
	mu       sync.Mutex
	objects  map[string]string
	requests []string
}

func newObjectServer(t *testing.T, objects map[string]string) *objectServer {
	t.Helper()
	s := &objectServer{objects: objects}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()

		body, ok := s.objects[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *objectServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// setupEnv points the configuration at a fresh project root and clears every
// variable the command reads.
func setupEnv(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"BUCKET", "AWS_FILES", "REGION", "API_URL", "ACCESS_KEY", "SECRET_KEY", "ROOT_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return t.TempDir()
}

// execute runs the root command with args and returns stdout and stderr.
// Flags keep their values between executions, so they are reset first.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute()
	return stdout.String(), stderr.String(), err
}

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
