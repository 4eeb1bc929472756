// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package content defines the strongly-typed data model shared by every stage
// of the content pipeline.
//
// # Core Concepts
//
//   - Category: one of the seven kinds of content a declaration may carry.
//     Six of them end up in the registry; VisualData only exists to be joined
//     onto its siblings.
//
//   - Identity: the (source, priority, category, name) tuple of a flattened
//     entry. Source, category and name form the resolution reference; the
//     priority decides which of several entries with the same reference wins.
//
//   - Payload: a sealed sum type with one concrete variant per category.
//     Stages consume it with a type switch, so a payload can never be read
//     as the wrong category.
//
//   - Records: the final, id-bearing types stored in the registry, with
//     display attributes merged in and category defaults applied.
package content
