/*
Package interval implements set operations on half-open genomic intervals.

	A Set is represented as a sorted sequence of interval endpoints: element
	[2k] is the (inclusive) start of interval #k and [2k+1] its (exclusive)
	end.  Overlapping and touching intervals are merged.

	For example, given the intervals
	  [5, 15)
	  [7, 17)
	  [20, 25)
	the set is
	  [5, 17) U [20, 25)
	represented as
	  Set{5, 17, 20, 25}.
*/
package interval
