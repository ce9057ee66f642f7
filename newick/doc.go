/*
Package newick provides facilities for reading, writing and rewriting trees
in the Newick format. The format used is roughly equivalent to the
conventions established here:
http://evolution.genetics.washington.edu/phylip/newick_doc.html.

Quoted labels are unescaped when read and quoted again on output when they
contain structural characters. Underscores in unquoted labels are kept as
they are; use Pretty to display them as spaces. Bracketed comments holding
a single number are read as support values. Other comments are discarded.

A missing branch length reads as 0, with HasLength set to false, and is
omitted on output. Lengths and support values are written with 5 decimal
places of precision and without trailing zeros:

	((A_1:1,B_1:1)0:0,F_1:1,E_1:1,(G_1:1,H_1:1)0:0)0:0;

The rewriting functions (DeleteTaxon, SubstituteTaxon, Uniquify, ...) never
modify the tree they are given. They return a new tree.
*/
package newick
