// Package output renders drift reports for humans and machines.
//
// Two formats: "text" for terminals and "json" for scripting. Writers are
// stateless and write to any io.Writer; the CLI decides between stdout and
// a file.
package output
