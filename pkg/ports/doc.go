// Package ports defines the boundary interfaces between the dialog engine and
// its infrastructure adapters: durable stack storage and distributed locking.
package ports
