// Package equiv holds the equivalence map shared by every merge: an array
// mapping each glue index to the representative of its class.
//
// A Map is kept flat: every entry is the representative itself, and the
// representative of a class is its smallest member. Under that invariant a
// class and the class of its complements always have complementary
// representatives, so counting classes counts glues of the reduced system.
package equiv
