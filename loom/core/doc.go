// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core provides the building blocks of the cooperative scheduling
// core: strand state machines, continuations, the carrier pool and the
// synchronization gates used to coordinate them.
package core
