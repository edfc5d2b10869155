// Package taskform maps task form submissions onto upstream task requests
// and upstream task records onto view models.
//
// Everything here is pure and safe for concurrent use.
package taskform
