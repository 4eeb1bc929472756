/*
Package registry holds the authoritative, numerically-indexed content
registry produced by one run of the content pipeline.

A Registry keeps one id -> record table per registered category (tile,
ground, item, visible_thing, thing, byte_stream) and, next to each table, an
IdentifierMap: a bijection between the canonical `source:name` key and the
numeric id.

The lifecycle is deliberately simple:

 1. Assembly: an Assembler receives fully materialized records, each already
    carrying its allocated id. It inserts every record into its table and its
    identifier bijection together, rejecting duplicate names, duplicate ids
    and ids that would leave a gap in the 0..n-1 range.

 2. Ready: Assembler.Registry seals the assembler and hands out the Registry.
    From that point on the value is never mutated and may be shared freely
    between goroutines.

 3. Reload: a brand-new Registry is assembled and installed in a Holder with a
    single atomic swap. Readers holding the previous value keep a consistent
    view; ids cached from it are not valid for the new one.

Snapshots provide a serialisable form of a Registry so that a previously
built id assignment can be stored and restored.
*/
package registry
