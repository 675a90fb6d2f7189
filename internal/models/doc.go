// Package models defines the core domain models for billsplit.
//
// Persistence follows a strict ownership chain: a User owns Groups, a Group
// owns Members, and a Member pays Bills. Every access check in the storage
// layer walks this chain back to the owning user's username.
//
// Settlement plans are deliberately not modeled here: they are transient
// results computed per request and never persisted (see the settlement
// package).
package models
