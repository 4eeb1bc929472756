/*
Package builder turns a collection of raw declarations into a content
registry. It is the core of the load-time pipeline and runs synchronously,
once per load or reload.

The build is a multi-phase process:

 1. Flatten: every declaration is exploded into one entry per category block
    it carries. Each entry gets its identity: the source (explicit override or
    the module name), the priority (explicit or 0), the category and the
    declaration's name.

 2. Resolve: entries sharing a (source, category, name) reference are
    deduplicated through a hash index. The highest priority wins and replaces
    the whole payload; on equal priority the entry declared last wins.

 3. Join: visual_data entries are indexed by (source, name) and attached to
    the tile, ground, item and visible_thing entries that need them. Entries
    without a visual sibling, without a mandatory field or with an invalid
    field are dropped and reported as diagnostics; the rest of the load is
    unaffected.

 4. Allocate: ids 0, 1, 2, ... are assigned per category in resolution order
    and the records are handed to a registry.Assembler, which maintains the
    name <-> id bijections.

Fatal problems (too many records for a uint16 id space) are returned as
errors. Per-entry problems only appear in the Report.
*/
package builder
