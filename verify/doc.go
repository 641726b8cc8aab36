// Package verify checks parsed records against the grammar of their file
// format and reports the first violation by field.
//
// The check runs on a record's serialized form: a record passes if it can be
// written back out as a valid entry.  An entry is first matched against the
// whole grammar; only when that fails is it split on the grammar's
// delimiter and each field matched on its own, to find the one that is
// wrong.
package verify
