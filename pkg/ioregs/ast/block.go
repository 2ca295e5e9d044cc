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

// Package ast holds the immutable data model produced by the parser (see
// spec.md §3): Block, Member (Register or Group), Field and Variant. These
// types carry no behaviour beyond simple derived quantities (byte length,
// bit size) — validation, layout planning and code emission are separate
// passes which only ever read this tree, never mutate it.
package ast

import "github.com/ioregen/ioregen/internal/source"

// Block is the top-level unit of the DSL: one named, based register map.
type Block struct {
	Name    string
	Base    uint64
	Members []Member
	Span    source.Span
}

// MemberKind distinguishes the two things that can appear inside a Block or
// Group: a single (possibly arrayed) register, or a nested group of
// members repeated as a whole.
type MemberKind int

// The two kinds of member a Block or Group may contain.
const (
	MemberRegister MemberKind = iota
	MemberGroup
)

// Member is a sum type over Register and Group, tagged by Kind. Exactly one
// of Register/Group is non-nil, matching which Kind is set.
type Member struct {
	Kind     MemberKind
	Register *Register
	Group    *Group
}

// Offset returns the declared byte offset of this member within its parent.
func (m Member) Offset() uint64 {
	if m.Kind == MemberRegister {
		return m.Register.OffsetVal
	}

	return m.Group.OffsetVal
}

// Span returns the source span of the member's declaration.
func (m Member) Span() source.Span {
	if m.Kind == MemberRegister {
		return m.Register.Span
	}

	return m.Group.Span
}

// Ident returns the declared identifier of this member.
func (m Member) Ident() string {
	if m.Kind == MemberRegister {
		return m.Register.Ident
	}

	return m.Group.Ident
}

// CountOf returns the declared array count of this member (1 when it was
// not declared as an array).
func (m Member) CountOf() uint64 {
	if m.Kind == MemberRegister {
		return m.Register.Count
	}

	return m.Group.Count
}

// ByteLength returns the total size, in bytes, occupied by this member
// (including its own array dimension, but excluding any padding the layout
// planner inserts before or after it).
func (m Member) ByteLength() uint64 {
	if m.Kind == MemberRegister {
		return m.Register.ByteLength()
	}

	return m.Group.ByteLength()
}

// Group is a named, repeatable block of nested members sharing one base
// offset. Per spec.md §3 its total size is count × Σ(child sizes including
// interior padding).
type Group struct {
	Ident     string
	OffsetVal uint64
	Count     uint64 // array count; 1 when not declared as an array
	Members   []Member
	Span      source.Span
}

// ByteLength returns count × the padded size of one instance, per spec.md
// §3: "N × Σ(child sizes including inter-child padding)". A naive sum of
// the members' own declared sizes would omit any gap the layout planner
// pads in between them, so instead this takes the end of the
// furthest-reaching member (its declared offset plus its own size) as the
// single instance's size — members are sorted by declared offset within
// their parent, so the last member normally determines this, but the max
// is taken defensively rather than assumed.
func (g *Group) ByteLength() uint64 {
	var end uint64

	for _, m := range g.Members {
		if e := m.Offset() + m.ByteLength(); e > end {
			end = e
		}
	}

	return end * g.Count
}

// Register is a single named MMIO register, optionally arrayed, made up of
// an ordered list of bitfields.
type Register struct {
	Ident     string
	OffsetVal uint64
	Width     uint // one of 8, 16, 32, 64
	Count     uint64
	Fields    []*Field
	Span      source.Span
}

// ByteLength returns (width/8) × count, per spec.md §3.
func (r *Register) ByteLength() uint64 {
	return uint64(r.Width/8) * r.Count
}

// IsWriteOnly reports whether every declared field on this register carries
// the WO modifier — the condition under which the emitted updater must
// never issue a preceding read (spec.md §4.4.4).
func (r *Register) IsWriteOnly() bool {
	if len(r.Fields) == 0 {
		return false
	}

	for _, f := range r.Fields {
		if f.Access != WO {
			return false
		}
	}

	return true
}
