// Copyright The ioregen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Concurrency contract for every generated accessor (spec.md §5):
//
//   - A reader is a snapshot: one VolatileCell.Load() at construction,
//     never touching the cell again.
//   - An updater accumulates field writes in-memory and performs at most
//     one VolatileCell.Load() (for the read-modify-write merge) and
//     exactly one VolatileCell.Store() at Commit(), never more. A Commit()
//     with no field set performs neither.
//   - Read-modify-write is not atomic with respect to other goroutines or
//     interrupt handlers touching the same register concurrently; callers
//     synchronize externally (a mutex, or disabling interrupts) exactly as
//     they would around any other non-atomic multi-step hardware access.
//   - Commit() must be called; generated call sites use `defer u.Commit()`
//     immediately after construction, since Go has no scope-exit
//     destructor to do this automatically.
package runtime
