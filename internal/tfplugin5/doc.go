// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

// Package tfplugin5 contains hand-maintained bindings for the subset of
// version 5 of the Terraform plugin protocol that this client consumes:
// the provider schema, configuration and stop RPCs, and the per-resource
// import/read/plan/apply RPCs.
//
// The authoritative protocol definition lives in the upstream
// tfplugin5.proto; tfplugin5.proto in this directory is the trimmed copy
// these bindings follow. Message and field numbering must stay
// wire-compatible with upstream. Fields of RPCs this client never calls
// (validation, data sources, state upgrades, provisioners, functions) are
// deliberately not bound.
package tfplugin5
