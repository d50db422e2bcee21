// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

// Package getproviders resolves, downloads and installs provider plugin
// binaries from the public registry.
package getproviders

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-retryablehttp"
	version "github.com/hashicorp/go-version"
)

const registryBaseURL = "https://registry.terraform.io/v1/providers"

// NotReadyError means an Installer step was invoked before the step it
// depends on: Download before Resolve, Install before Download.
type NotReadyError struct {
	Message string
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("installer not ready: %s", e.Message)
}

// Installer fetches one provider binary. Resolve, Download and Install
// are separate steps so callers can cache the archive between runs.
type Installer struct {
	Namespace string
	Type      string
	// Version pins a release; empty means latest.
	Version string

	httpClient *retryablehttp.Client
	logger     hclog.Logger

	downloadURL  string
	filename     string
	shasum       string
	downloadPath string
}

// NewInstaller returns an Installer for the provider at
// <namespace>/<type> in the public registry.
func NewInstaller(namespace, providerType, pinnedVersion string, logger hclog.Logger) *Installer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("installer")

	httpClient := retryablehttp.NewClient()
	httpClient.Logger = logger

	return &Installer{
		Namespace:  namespace,
		Type:       providerType,
		Version:    pinnedVersion,
		httpClient: httpClient,
		logger:     logger,
	}
}

type providerVersionsResponse struct {
	Version  string   `json:"version"`
	Versions []string `json:"versions"`
}

type providerDownloadResponse struct {
	DownloadURL string `json:"download_url"`
	Filename    string `json:"filename"`
	Shasum      string `json:"shasum"`
}

// Resolve looks the provider up in the registry and records the download
// location for this platform. With no pinned version the newest available
// release is selected; a pinned version that the registry does not list
// is an error.
func (i *Installer) Resolve(ctx context.Context) error {
	var listing providerVersionsResponse
	listURL := fmt.Sprintf("%s/%s/%s", registryBaseURL, i.Namespace, i.Type)
	if err := i.getJSON(ctx, listURL, &listing); err != nil {
		return err
	}

	if i.Version == "" {
		selected, err := latestVersion(listing)
		if err != nil {
			return fmt.Errorf("provider %s/%s: %w", i.Namespace, i.Type, err)
		}
		i.Version = selected
	} else if !containsVersion(listing.Versions, i.Version) {
		return fmt.Errorf("version %q is not available for provider %s/%s", i.Version, i.Namespace, i.Type)
	}

	var download providerDownloadResponse
	downloadURL := fmt.Sprintf("%s/%s/%s/%s/download/%s/%s",
		registryBaseURL, i.Namespace, i.Type, i.Version, runtime.GOOS, runtime.GOARCH)
	if err := i.getJSON(ctx, downloadURL, &download); err != nil {
		return err
	}
	if download.DownloadURL == "" {
		return fmt.Errorf("registry returned no download URL for %s/%s %s on %s/%s",
			i.Namespace, i.Type, i.Version, runtime.GOOS, runtime.GOARCH)
	}

	i.downloadURL = download.DownloadURL
	i.filename = download.Filename
	i.shasum = download.Shasum
	i.logger.Debug("resolved provider", "namespace", i.Namespace, "type", i.Type,
		"version", i.Version, "url", i.downloadURL)
	return nil
}

// Download fetches the provider archive to path, verifying its sha256
// digest when the registry published one. An existing file at path with a
// matching digest is reused without a network round trip.
func (i *Installer) Download(ctx context.Context, path string) (string, error) {
	if i.downloadURL == "" {
		return "", &NotReadyError{Message: "no download URL, call Resolve first"}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	if i.shasum != "" {
		if sum, err := fileSHA256(path); err == nil && sum == i.shasum {
			i.logger.Debug("archive already downloaded", "path", path)
			i.downloadPath = path
			return path, nil
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", i.downloadURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download provider archive: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("failed to download provider archive: HTTP %d from %s", resp.StatusCode, i.downloadURL)
	}

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	hash := sha256.New()
	_, copyErr := io.Copy(io.MultiWriter(out, hash), resp.Body)
	closeErr := out.Close()
	if copyErr != nil {
		return "", fmt.Errorf("failed to write provider archive: %w", copyErr)
	}
	if closeErr != nil {
		return "", closeErr
	}

	if sum := hex.EncodeToString(hash.Sum(nil)); i.shasum != "" && sum != i.shasum {
		return "", fmt.Errorf("downloaded archive has digest %s, expected %s", sum, i.shasum)
	}

	i.downloadPath = path
	return path, nil
}

// InstallDryRun locates the provider binary inside the downloaded archive
// without extracting it, returning where Install would place it and the
// entry name inside the archive. Entry recognition matches the upstream
// convention: the name starts with terraform-provider-<type> followed by
// nothing, an underscore or a dot.
func (i *Installer) InstallDryRun(installDir string) (string, string, error) {
	if i.downloadPath == "" {
		return "", "", &NotReadyError{Message: "no downloaded archive, call Download first"}
	}
	info, err := os.Stat(installDir)
	if err != nil || !info.IsDir() {
		return "", "", &NotReadyError{Message: fmt.Sprintf("install location %q is not an existing directory", installDir)}
	}

	archive, err := zip.OpenReader(i.downloadPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to open provider archive %q: %w", i.downloadPath, err)
	}
	defer archive.Close()

	wantPrefix := "terraform-provider-" + i.Type
	var binaryName string
	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if !strings.HasPrefix(entry.Name, wantPrefix) {
			continue
		}
		remainder := entry.Name[len(wantPrefix):]
		if remainder != "" && remainder[0] != '_' && remainder[0] != '.' {
			continue
		}
		binaryName = entry.Name
	}
	if binaryName == "" {
		return "", "", fmt.Errorf("no executable starting with %q in %s", wantPrefix, i.downloadPath)
	}

	return filepath.Join(installDir, binaryName), binaryName, nil
}

// Install extracts the provider binary into installDir and makes it
// executable. An existing file at the target is refused unless force.
func (i *Installer) Install(installDir string, force bool) (string, error) {
	binaryPath, binaryName, err := i.InstallDryRun(installDir)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(binaryPath); err == nil && !force {
		return "", fmt.Errorf("installing this binary would overwrite %s", binaryPath)
	}

	archive, err := zip.OpenReader(i.downloadPath)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	for _, entry := range archive.File {
		if entry.Name != binaryName {
			continue
		}
		src, err := entry.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()

		dst, err := os.OpenFile(binaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(dst, src); err != nil {
			dst.Close()
			return "", fmt.Errorf("failed to extract %s: %w", binaryName, err)
		}
		if err := dst.Close(); err != nil {
			return "", err
		}
		if err := os.Chmod(binaryPath, 0o755); err != nil {
			return "", err
		}
		i.logger.Info("installed provider binary", "path", binaryPath, "version", i.Version)
		return binaryPath, nil
	}
	return "", fmt.Errorf("entry %q vanished from %s", binaryName, i.downloadPath)
}

func (i *Installer) getJSON(ctx context.Context, url string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	resp, err := i.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("registry returned HTTP %d for %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid registry response from %s: %w", url, err)
	}
	return nil
}

// latestVersion picks the newest release. The registry reports its own
// idea of the latest in the "version" field; the full listing is sorted
// as a fallback for mirrors that omit it.
func latestVersion(listing providerVersionsResponse) (string, error) {
	if listing.Version != "" {
		return listing.Version, nil
	}

	var newest *version.Version
	var selected string
	for _, raw := range listing.Versions {
		v, err := version.NewVersion(raw)
		if err != nil {
			continue
		}
		if newest == nil || v.GreaterThan(newest) {
			newest = v
			selected = raw
		}
	}
	if selected == "" {
		return "", fmt.Errorf("registry listed no usable versions")
	}
	return selected, nil
}

func containsVersion(available []string, want string) bool {
	for _, v := range available {
		if v == want {
			return true
		}
	}
	return false
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
