// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*

loom emits the following sources of logging:

1. Internal logs: the scheduling core's own application logs into stderr for
   operational use (dispatch decisions, carrier lifecycle, fatal errors).
2. Workload logs: whatever the submitted task bodies print on their own;
   these are not intercepted or reformatted by loom.

Internal logs are produced via logrus with InternalFormatter, configured by
SetLogLevel and SetOutput.

*/
package logging
