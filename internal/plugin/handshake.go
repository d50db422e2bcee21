// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"fmt"
	"strconv"
	"strings"
)

// The sidecar-plugin handshake contract. A provider binary refuses to
// speak the protocol unless the magic cookie pair is present in its
// environment, which stops it from being launched as a standalone program
// by mistake.
const (
	MagicCookieKey   = "TF_PLUGIN_MAGIC_COOKIE"
	MagicCookieValue = "d602bf8f470bc67ca7faa0386276bbdd4330efaf76d1a219cb4d6991ca9872b2"

	// CoreProtocolVersion is the go-plugin core handshake version this
	// client understands. There has only ever been one.
	CoreProtocolVersion = 1

	pluginMinPort = "40000"
	pluginMaxPort = "41000"
)

// SupportedProtocolVersions are the provider protocol major versions this
// client can negotiate.
var SupportedProtocolVersions = []int{4, 5}

// InitError is a protocol-init failure: the handshake line was malformed
// or announced something this client does not support. The plugin process
// is unusable when Start returns one of these.
type InitError struct {
	Message string
}

func (e *InitError) Error() string {
	return fmt.Sprintf("failed to initialize the plugin: %s", e.Message)
}

func initErrorf(format string, args ...any) *InitError {
	return &InitError{Message: fmt.Sprintf(format, args...)}
}

// parseHandshake parses the single pipe-delimited line a plugin prints on
// stdout at startup:
//
//	core_version | proto_version | transport_kind | transport_address | app_protocol
//
// and returns the gRPC target address. Anything other than core version 1,
// a supported proto version, a unix-socket transport and the grpc
// application protocol is rejected.
func parseHandshake(line string) (string, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 4 {
		return "", initErrorf("invalid protocol response of plugin: %q", line)
	}

	coreVersion, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", initErrorf("invalid core protocol version: %q", parts[0])
	}
	if coreVersion != CoreProtocolVersion {
		return "", initErrorf("invalid core protocol version: '%d' (expected %d)", coreVersion, CoreProtocolVersion)
	}

	protoVersion, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", initErrorf("invalid protocol version for plugin: %q", parts[1])
	}
	if !supportedVersion(protoVersion) {
		return "", initErrorf("invalid protocol version for plugin %d, only %v supported", protoVersion, SupportedProtocolVersions)
	}

	if parts[2] != "unix" {
		return "", initErrorf("only unix sockets are supported, but got %q", parts[2])
	}

	if len(parts) < 5 || parts[4] != "grpc" {
		return "", initErrorf("only the gRPC protocol is supported, but got %q", strings.Join(parts[4:], "|"))
	}

	return "unix://" + parts[3], nil
}

func supportedVersion(v int) bool {
	for _, s := range SupportedProtocolVersions {
		if v == s {
			return true
		}
	}
	return false
}

func protocolVersionsEnv() string {
	versions := make([]string, len(SupportedProtocolVersions))
	for i, v := range SupportedProtocolVersions {
		versions[i] = strconv.Itoa(v)
	}
	return strings.Join(versions, ",")
}
