// SPDX-License-Identifier: MIT
// Package pipeline sequences the placement, CTS, and routing engines
// as an ordered, resumable list of named stages (spec §4.10 / C10),
// executing them on a single background worker and surfacing progress
// through an event queue instead of direct callbacks.
//
// Grounded on the original tool's GUI::TaskList (gui/common/tasklist.cpp)
// and Tasks::Task (gui/tasks/tasks.h, tasks.cpp): the same ordered
// stage list, the same "reset everything from the target stage onward,
// then resume from the first not-yet-done predecessor" re-run rule
// (TaskList::executeToTask), and the same one-worker-thread-plus-posted-
// events concurrency shape — but in Go idiom, a posted-event queue is
// [internal/mtqueue]'s blocking MPSC queue rather than Qt's event loop.
package pipeline
