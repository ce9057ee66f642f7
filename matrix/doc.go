/*
Package matrix builds the matrix representation (MRP) of a set of source
trees: one binary character per informative clade of every tree, one row per
taxon of the whole set.

A taxon's state for a character is '1' when it sits under the clade, '0'
when it is elsewhere in the same source tree, and '?' when the source tree
does not contain it at all. Contradictory topologies between source trees
are expected and are not checked.

Matrices can be written as a NEXUS DATA block or as a TNT/Hennig86 xread
block.
*/
package matrix
