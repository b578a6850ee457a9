// Copyright (c) Revstack, Inc.
// SPDX-License-Identifier: MPL-2.0

/*
notify is a package that provides a minimal notification capability gateway:
a Device interface abstracting the host's notification surface (a browser's
Notification API, a desktop shell, or a log stream), and a Gateway applying
the permission and auto-dismiss policy on top of whichever Device is
injected. Gateways are constructed per subscribing owner; the package holds
no global state.
*/
package notify
