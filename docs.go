// Copyright (c) Revstack, Inc.
// SPDX-License-Identifier: MPL-2.0

// session (collection of client-session packages) provides a collection of
// related packages which make up the client-session layer of the Revstack
// review-authoring tool: OAuth completion handling, provider error mapping, a
// notification capability gateway, and a workflow-status notification watcher.
//
// See README.md
package session
