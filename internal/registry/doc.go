// Package registry owns the uniquely-named set of configuration values
// derived for one build invocation, together with the namelist-group list
// and the CPP definition set that accompany them. Build runs the ordered
// derivation pipeline that turns host case variables into the full
// parameter set; each step mutates state the next step may read, so the
// sequence is fixed and nothing runs concurrently.
package registry
