// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package getproviders

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeArchive builds a provider zip with the given entry names.
func writeArchive(t *testing.T, entries ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "provider.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	for _, name := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write([]byte("#!/bin/sh\n")); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func newDownloadedInstaller(t *testing.T, providerType string, entries ...string) *Installer {
	t.Helper()
	i := NewInstaller("unittest", providerType, "1.0.0", nil)
	i.downloadPath = writeArchive(t, entries...)
	return i
}

func TestInstallDryRunEntrySelection(t *testing.T) {
	i := newDownloadedInstaller(t, "local",
		"README.md",
		"terraform-provider-localdisk", // prefix match with wrong separator
		"terraform-provider-local_v1.0.0_x5",
	)

	dir := t.TempDir()
	binaryPath, binaryName, err := i.InstallDryRun(dir)
	if err != nil {
		t.Fatalf("InstallDryRun: %s", err)
	}
	if binaryName != "terraform-provider-local_v1.0.0_x5" {
		t.Errorf("wrong entry %q", binaryName)
	}
	if binaryPath != filepath.Join(dir, binaryName) {
		t.Errorf("wrong target path %q", binaryPath)
	}
}

func TestInstallDryRunExactName(t *testing.T) {
	i := newDownloadedInstaller(t, "local", "terraform-provider-local")

	_, binaryName, err := i.InstallDryRun(t.TempDir())
	if err != nil {
		t.Fatalf("InstallDryRun: %s", err)
	}
	if binaryName != "terraform-provider-local" {
		t.Errorf("wrong entry %q", binaryName)
	}
}

func TestInstallDryRunNoMatch(t *testing.T) {
	i := newDownloadedInstaller(t, "local", "terraform-provider-remote_v1.0.0")

	if _, _, err := i.InstallDryRun(t.TempDir()); err == nil {
		t.Fatal("expected error for archive without a matching binary")
	}
}

func TestInstallDryRunNotReady(t *testing.T) {
	i := NewInstaller("unittest", "local", "", nil)

	_, _, err := i.InstallDryRun(t.TempDir())
	var notReady *NotReadyError
	if !errors.As(err, &notReady) {
		t.Fatalf("expected *NotReadyError, got %v", err)
	}

	if _, err := i.Download(context.Background(), filepath.Join(t.TempDir(), "x.zip")); err == nil {
		t.Fatal("Download before Resolve must fail")
	}
}

func TestInstall(t *testing.T) {
	i := newDownloadedInstaller(t, "local", "terraform-provider-local_v1.0.0_x5")
	dir := t.TempDir()

	binaryPath, err := i.Install(dir, false)
	if err != nil {
		t.Fatalf("Install: %s", err)
	}
	info, err := os.Stat(binaryPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("binary is not executable: %s", info.Mode())
	}

	// A second install must refuse to overwrite unless forced.
	if _, err := i.Install(dir, false); err == nil {
		t.Fatal("expected overwrite refusal")
	}
	if _, err := i.Install(dir, true); err != nil {
		t.Fatalf("forced Install: %s", err)
	}
}
