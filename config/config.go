// SPDX-License-Identifier: GPL-2.0-or-later

// Package config holds the translator-wide tunables that sit outside a
// single ta_context: settings that, in the teacher, would be registered
// cvars. They default the way the source's #defines/constants do, and
// can be overridden once at startup (by a CLI flag, a test, ...).
package config

// StrictParamSizes, when true (the default), treats a polygon parameter
// with an unrecognized poly type, or a TA_PARAM_VERTEX command with an
// unrecognized vertex type (spec §7 category 1), as fatal, matching the
// source's CHECK_* behavior. Turning it off logs
// and skips the command instead — a hardening knob for feeding the
// translator fuzzed or truncated capture files without crashing a
// batch run.
var StrictParamSizes = true

// ReuseScratchBuffer controls whether texture binding reuses one
// package-level decode scratch buffer (matching the source's static
// uint8_t converted[1024*1024*4]) or allocates a fresh one per Convert
// call.
// The source's approach is only safe single-threaded; see spec §5.
var ReuseScratchBuffer = true

// DefaultEndSurf is the render driver's default step-through stop
// index: -1 never matches any surface, so rendering always runs to
// completion. cmd/tatrace exposes this as -end-surf for step debugging.
var DefaultEndSurf = -1
