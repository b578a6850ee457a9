// Copyright (c) Revstack, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
workflow is a package that watches review-pipeline workflows for the user:
a Client reads a workflow's status from the backend pipeline service, a
Poller observes each subscribed workflow on a fixed interval, and a Watcher
turns terminal-status transitions into user notifications, emitting at most
one notification per distinct (workflow, status) pair.
*/
package workflow
