// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package provider

import (
	"fmt"
	"strings"

	"github.com/terradrive/terradrive/internal/tfplugin5"
)

// Severity of a provider diagnostic.
type Severity int

const (
	SeverityInvalid Severity = iota
	SeverityError
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "invalid"
	}
}

// Diagnostic is one message a provider attached to an RPC response.
type Diagnostic struct {
	Severity Severity
	Summary  string
	Detail   string

	// Attribute points at the configuration attribute the diagnostic is
	// about, rendered as a dotted path. Empty when the provider did not
	// attach one.
	Attribute string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Summary)
	if d.Detail != "" {
		fmt.Fprintf(&b, ": %s", d.Detail)
	}
	if d.Attribute != "" {
		fmt.Fprintf(&b, " (at %s)", d.Attribute)
	}
	return b.String()
}

// Diagnostics is everything a provider reported on one RPC.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic carries error severity. An
// invalid severity counts as an error: a provider that cannot label its
// own messages cannot be trusted to have succeeded.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity != SeverityWarning {
			return true
		}
	}
	return false
}

// Warnings returns the warning-severity subset.
func (ds Diagnostics) Warnings() Diagnostics {
	var warnings Diagnostics
	for _, d := range ds {
		if d.Severity == SeverityWarning {
			warnings = append(warnings, d)
		}
	}
	return warnings
}

// Err returns a *DiagnosticsError when ds contains errors, nil otherwise.
func (ds Diagnostics) Err() error {
	if !ds.HasErrors() {
		return nil
	}
	return &DiagnosticsError{Diagnostics: ds}
}

// DiagnosticsError is an operation the provider itself rejected. It
// carries the full diagnostics, warnings included, so callers can render
// everything the provider had to say.
type DiagnosticsError struct {
	Diagnostics Diagnostics
}

func (e *DiagnosticsError) Error() string {
	var msgs []string
	for _, d := range e.Diagnostics {
		if d.Severity == SeverityWarning {
			continue
		}
		msgs = append(msgs, d.String())
	}
	return fmt.Sprintf("provider reported %d error(s): %s", len(msgs), strings.Join(msgs, "; "))
}

func diagnosticsFromProto(protoDiags []*tfplugin5.Diagnostic) Diagnostics {
	var diags Diagnostics
	for _, pd := range protoDiags {
		if pd == nil {
			continue
		}
		d := Diagnostic{
			Summary:   pd.Summary,
			Detail:    pd.Detail,
			Attribute: formatAttributePath(pd.Attribute),
		}
		switch pd.Severity {
		case tfplugin5.Diagnostic_ERROR:
			d.Severity = SeverityError
		case tfplugin5.Diagnostic_WARNING:
			d.Severity = SeverityWarning
		default:
			d.Severity = SeverityInvalid
		}
		diags = append(diags, d)
	}
	return diags
}

func formatAttributePath(path *tfplugin5.AttributePath) string {
	if path == nil {
		return ""
	}
	var b strings.Builder
	for _, step := range path.Steps {
		switch {
		case step.AttributeName != "":
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(step.AttributeName)
		case step.ElementKeyString != "":
			fmt.Fprintf(&b, "[%q]", step.ElementKeyString)
		default:
			fmt.Fprintf(&b, "[%d]", step.ElementKeyInt)
		}
	}
	return b.String()
}
