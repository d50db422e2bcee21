// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

// Package plugin manages a provider plugin binary as a child process:
// launching it with the handshake environment, parsing the one-line
// handshake it prints on stdout, dialing the unix-socket gRPC channel it
// announces, and tearing all of that down again.
package plugin

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	multierror "github.com/hashicorp/go-multierror"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/terradrive/terradrive/internal/tfplugin5"
)

// ErrNotStarted is returned by accessors on a Client whose Start has not
// completed successfully.
var ErrNotStarted = fmt.Errorf("plugin process not started")

// handshakeTimeout bounds how long Start waits for the plugin to print its
// handshake line. A binary that stays silent this long is not a plugin.
const handshakeTimeout = time.Minute

// stopTimeout bounds each step of Stop: waiting for the killed process to
// be reaped and for the output drain goroutines to hit EOF.
const stopTimeout = 5 * time.Second

// Client runs one provider plugin process and owns its gRPC channel. The
// zero value is not usable; construct with NewClient. A Client moves
// through not-started, running and stopped exactly once: a stopped Client
// is not restartable.
type Client struct {
	binaryPath string
	logger     hclog.Logger

	mu      sync.Mutex
	cmd     *exec.Cmd
	conn    *grpc.ClientConn
	proto   tfplugin5.ProviderClient
	drains  sync.WaitGroup
	started bool
	stopped bool
}

// NewClient returns a Client that will run the plugin binary at path.
func NewClient(path string, logger hclog.Logger) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Client{
		binaryPath: path,
		logger:     logger.Named("plugin"),
	}
}

// Start launches the plugin process, waits for its handshake line and
// dials the gRPC channel it announces. A handshake this client cannot
// accept is reported as a *InitError and the process is killed before
// Start returns. Start is idempotent while the Client is running.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return fmt.Errorf("plugin process already stopped")
	}
	if c.started {
		return nil
	}

	cmd := exec.Command(c.binaryPath)
	cmd.Env = append(os.Environ(),
		MagicCookieKey+"="+MagicCookieValue,
		"PLUGIN_MIN_PORT="+pluginMinPort,
		"PLUGIN_MAX_PORT="+pluginMaxPort,
		"PLUGIN_PROTOCOL_VERSIONS="+protocolVersionsEnv(),
		// Providers route their own diagnostics through these; without
		// them most binaries print nothing at all.
		"TF_LOG=TRACE",
		"TF_LOG_LEVEL=DEBUG",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdout of plugin process: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to open stderr of plugin process: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start plugin process %q: %w", c.binaryPath, err)
	}
	c.logger.Debug("started plugin process", "path", c.binaryPath, "pid", cmd.Process.Pid)

	// stderr has no handshake; drain it from the first byte.
	stdoutReader := bufio.NewReader(stdout)
	c.drains.Add(1)
	go c.drain("stderr", stderr)

	target, err := c.awaitHandshake(ctx, stdoutReader)
	if err != nil {
		// The process is useless to us now. Reap it, but keep the
		// handshake failure as the reported error.
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
		waitTimeout(&c.drains, stopTimeout)
		return err
	}

	// Everything the plugin prints after the handshake is log output.
	c.drains.Add(1)
	go c.drain("stdout", stdoutReader)

	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
		waitTimeout(&c.drains, stopTimeout)
		return fmt.Errorf("failed to dial plugin at %q: %w", target, err)
	}

	c.cmd = cmd
	c.conn = conn
	c.proto = tfplugin5.NewProviderClient(conn)
	c.started = true
	c.logger.Debug("plugin handshake complete", "target", target)
	return nil
}

// awaitHandshake reads exactly one line from the plugin's stdout and
// parses it, bounded by both ctx and the handshake timeout.
func (c *Client) awaitHandshake(ctx context.Context, r *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := r.ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return "", initErrorf("plugin exited before handshake: %s", res.err)
		}
		return parseHandshake(strings.TrimSpace(res.line))
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(handshakeTimeout):
		return "", initErrorf("timed out waiting for plugin handshake")
	}
}

// Proto returns the raw protocol client for the running plugin.
func (c *Client) Proto() (tfplugin5.ProviderClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || c.stopped {
		return nil, ErrNotStarted
	}
	return c.proto, nil
}

// Conn returns the gRPC channel to the running plugin.
func (c *Client) Conn() (*grpc.ClientConn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || c.stopped {
		return nil, ErrNotStarted
	}
	return c.conn, nil
}

// Stop shuts the plugin down: a best-effort Stop RPC, then a kill, then a
// bounded wait for the process and for the output drains, then the channel
// close. Every step runs regardless of earlier failures and the failures
// are aggregated. Stop is idempotent.
func (c *Client) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || !c.started {
		c.stopped = true
		return nil
	}
	c.stopped = true

	var errs *multierror.Error

	if c.proto != nil {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		if _, err := c.proto.Stop(ctx, &tfplugin5.Stop_Request{}); err != nil {
			// Not fatal: the kill below is the enforcement.
			c.logger.Debug("plugin Stop RPC failed", "error", err)
		}
		cancel()
	}

	if c.cmd != nil && c.cmd.Process != nil {
		if err := c.cmd.Process.Kill(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to kill plugin process: %w", err))
		}
		if err := waitProcess(c.cmd, stopTimeout); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if !waitTimeout(&c.drains, stopTimeout) {
		errs = multierror.Append(errs, fmt.Errorf("plugin output drains did not finish within %s", stopTimeout))
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to close plugin channel: %w", err))
		}
	}

	c.cmd = nil
	c.conn = nil
	c.proto = nil
	c.logger.Debug("plugin process stopped", "path", c.binaryPath)
	return errs.ErrorOrNil()
}

// drain copies one output stream of the plugin process into the log,
// line by line, until EOF.
func (c *Client) drain(name string, r io.Reader) {
	defer c.drains.Done()
	logger := c.logger.Named(name)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		logger.Debug(line)
	}
}

func waitProcess(cmd *exec.Cmd, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	select {
	case <-done:
		// A non-zero exit after a kill is the expected outcome.
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("plugin process did not exit within %s", timeout)
	}
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
