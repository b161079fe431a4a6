package main

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const (
	serverBinary       = "vidrelay-server"
	serverStartTimeout = 10 * time.Second
	serverPollInterval = 200 * time.Millisecond
)

// isServerRunning checks if the server answers its health check
func isServerRunning() bool {
	client := &http.Client{Timeout: 1 * time.Second}
	resp, err := client.Get(serverURL + "/api/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// serverBinaryCandidates lists where the server binary is looked for, in order
func serverBinaryCandidates() []string {
	var candidates []string
	if p := os.Getenv("VIDRELAY_SERVER_BIN"); p != "" {
		candidates = append(candidates, p)
	}
	if execPath, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(execPath), serverBinary))
	}
	if p, err := exec.LookPath(serverBinary); err == nil {
		candidates = append(candidates, p)
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, "go", "bin", serverBinary),
			filepath.Join(home, ".local", "bin", serverBinary))
	}
	return append(candidates, "/usr/local/bin/"+serverBinary)
}

// findServerBinary returns the first candidate that exists
func findServerBinary() (string, error) {
	for _, p := range serverBinaryCandidates() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s binary not found", serverBinary)
}

// startServerBackground starts the server as a detached background process
func startServerBackground() error {
	serverPath, err := findServerBinary()
	if err != nil {
		return err
	}

	var args []string
	if serverConfig != "" {
		args = append(args, "-config", serverConfig)
	}
	cmd := exec.Command(serverPath, args...)
	setSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	// Reap the child if it exits while the CLI is still running
	go cmd.Wait()
	return nil
}

// waitForServerReady polls the health endpoint until it answers or the timeout passes
func waitForServerReady() error {
	deadline := time.Now().Add(serverStartTimeout)
	for time.Now().Before(deadline) {
		if isServerRunning() {
			return nil
		}
		time.Sleep(serverPollInterval)
	}
	return fmt.Errorf("server did not start within %v", serverStartTimeout)
}

// ensureServerRunning starts the server unless it is already answering
func ensureServerRunning() error {
	if isServerRunning() {
		return nil
	}

	fmt.Fprintln(os.Stderr, "Server not running, starting...")
	if err := startServerBackground(); err != nil {
		return err
	}
	if err := waitForServerReady(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Server started")
	return nil
}
