// Package session serializes turn processing per conversation. Within one
// process it uses reference-counted mutexes; across replicas it can layer a
// distributed locker on top. A conversation is a serialization key: many
// conversations proceed in parallel, but each one is processed one turn at a
// time.
package session
